// Package cli runs the bill wizard as a line-oriented terminal dialog.
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/mmynk/fairshare/internal/models"
	"github.com/mmynk/fairshare/internal/receipt"
	"github.com/mmynk/fairshare/internal/report"
	"github.com/mmynk/fairshare/internal/wizard"
)

// Options configures Run.
type Options struct {
	// Extractor reads receipt images for the "scan" command. Nil disables it.
	Extractor receipt.Extractor

	// ReadFile loads images for "scan"; defaults to os.ReadFile.
	ReadFile func(name string) ([]byte, error)

	// Session options, e.g. a deterministic ID generator in tests.
	SessionOptions []wizard.Option
}

type dialog struct {
	ctx  context.Context
	in   *bufio.Scanner
	out  io.Writer
	opts Options
	s    *wizard.Session
}

// Run walks the user through people, items, tax and tip, then prints the
// itemized breakdown and the share text. End of input finishes the current
// step.
func Run(ctx context.Context, in io.Reader, out io.Writer, opts Options) error {
	if opts.ReadFile == nil {
		opts.ReadFile = os.ReadFile
	}
	d := &dialog{
		ctx:  ctx,
		in:   bufio.NewScanner(in),
		out:  out,
		opts: opts,
		s:    wizard.NewSession(opts.SessionOptions...),
	}

	for _, step := range []func() error{d.people, d.items, d.totals} {
		if err := step(); err != nil {
			return err
		}
		if err := d.s.Next(); err != nil {
			return err
		}
	}

	bill := d.s.Bill()
	breakdown := d.s.Breakdown()
	fmt.Fprintf(d.out, "\n%s\n%s", report.Itemized(bill, breakdown), report.ShareText(bill, breakdown))
	return nil
}

// readLine prompts and returns the trimmed answer; ok is false at end of input.
func (d *dialog) readLine(prompt string) (line string, ok bool) {
	fmt.Fprint(d.out, prompt)
	if !d.in.Scan() {
		fmt.Fprintln(d.out)
		return "", false
	}
	return strings.TrimSpace(d.in.Text()), true
}

func (d *dialog) warn(err error) {
	fmt.Fprintf(d.out, "  ! %v\n", err)
}

func (d *dialog) people() error {
	fmt.Fprintln(d.out, "Who's splitting the bill? One name per line, blank line when done.")
	for {
		name, ok := d.readLine("name> ")
		if !ok || name == "" {
			if len(d.s.Bill().People) > 0 {
				return nil
			}
			if !ok {
				return wizard.ErrNoPeople
			}
			d.warn(wizard.ErrNoPeople)
			continue
		}
		if _, err := d.s.AddPerson(name); err != nil {
			d.warn(err)
		}
	}
}

func (d *dialog) items() error {
	fmt.Fprintln(d.out, "\nPeople:")
	for i, p := range d.s.Bill().People {
		fmt.Fprintf(d.out, "  %d. %s\n", i+1, p.Name)
	}
	fmt.Fprintln(d.out, "Add items as '<name> <price>' (e.g. 'Pizza 20.00').")
	if d.opts.Extractor != nil {
		fmt.Fprintln(d.out, "Type 'scan <image>' to read items off a receipt photo.")
	}
	fmt.Fprintln(d.out, "Blank line when done.")

	for {
		line, ok := d.readLine("item> ")
		if !ok || line == "" {
			return nil
		}

		if path, isScan := strings.CutPrefix(line, "scan "); isScan {
			items, err := d.scan(strings.TrimSpace(path))
			if err != nil {
				d.warn(err)
				continue
			}
			fmt.Fprintf(d.out, "  Found %d items.\n", len(items))
			for _, item := range items {
				if !d.assign(item) {
					return nil
				}
			}
			continue
		}

		name, price, err := parseItem(line)
		if err != nil {
			d.warn(err)
			continue
		}
		item, err := d.s.AddItem(name, price)
		if err != nil {
			d.warn(err)
			continue
		}
		if !d.assign(item) {
			return nil
		}
	}
}

// assign asks who shares the item. It returns false at end of input.
func (d *dialog) assign(item models.Item) bool {
	people := d.s.Bill().People
	for {
		answer, ok := d.readLine(fmt.Sprintf("  who had %s (%s)? [numbers, 'all', blank = nobody] ", item.Name, report.Money(item.Price)))
		if !ok {
			return false
		}
		if answer == "" {
			return true
		}
		if strings.EqualFold(answer, "all") {
			if err := d.s.AssignEveryone(item.ID); err != nil {
				d.warn(err)
			}
			return true
		}

		picks, err := parsePicks(answer, len(people))
		if err != nil {
			d.warn(err)
			continue
		}
		for _, i := range picks {
			if err := d.s.ToggleAssignment(item.ID, people[i].ID); err != nil {
				d.warn(err)
			}
		}
		return true
	}
}

func (d *dialog) scan(path string) ([]models.Item, error) {
	if d.opts.Extractor == nil {
		return nil, errors.New("receipt scanning is not configured (set GEMINI_API_KEY)")
	}
	data, err := d.opts.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read image: %w", err)
	}

	fmt.Fprintln(d.out, "  Scanning receipt...")
	lines, err := d.opts.Extractor.ExtractLineItems(d.ctx, receipt.Image{
		Data:     data,
		MIMEType: http.DetectContentType(data),
	})
	if err != nil {
		slog.Error("Receipt scan failed", "path", path, "error", err)
		return nil, fmt.Errorf("failed to scan receipt, add items manually: %w", err)
	}
	return d.s.AddLineItems(lines)
}

func (d *dialog) totals() error {
	fmt.Fprintf(d.out, "\nItems total: %s\n", report.Money(d.s.ItemsTotal()))

	for {
		answer, ok := d.readLine("tax amount [0]> ")
		if !ok || answer == "" {
			break
		}
		tax, err := parseMoney(answer)
		if err == nil {
			err = d.s.SetTax(tax)
		}
		if err != nil {
			d.warn(err)
			continue
		}
		break
	}

	for {
		answer, ok := d.readLine("tip, '20%' or '8.00' [20%]> ")
		if !ok || answer == "" {
			return nil
		}
		tip, err := parseTip(answer)
		if err == nil {
			err = d.s.SetTip(tip)
		}
		if err != nil {
			d.warn(err)
			continue
		}
		return nil
	}
}

// parseItem splits "Garlic bread 6.50" into its name and price.
func parseItem(line string) (string, decimal.Decimal, error) {
	i := strings.LastIndexAny(line, " \t")
	if i < 0 {
		return "", decimal.Zero, fmt.Errorf("expected '<name> <price>', got %q", line)
	}
	price, err := parseMoney(line[i+1:])
	if err != nil {
		return "", decimal.Zero, err
	}
	return strings.TrimSpace(line[:i]), price, nil
}

func parseMoney(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimPrefix(strings.TrimSpace(s), "$"))
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid amount %q", s)
	}
	return d, nil
}

func parseTip(s string) (models.Tip, error) {
	if pct, isPct := strings.CutSuffix(strings.TrimSpace(s), "%"); isPct {
		value, err := parseMoney(pct)
		if err != nil {
			return models.Tip{}, err
		}
		return models.PercentTip(value), nil
	}
	value, err := parseMoney(s)
	if err != nil {
		return models.Tip{}, err
	}
	return models.FixedTip(value), nil
}

// parsePicks turns "1, 3" into zero-based indexes below n.
func parsePicks(s string, n int) ([]int, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool { return r == ',' || r == ' ' })
	picks := make([]int, 0, len(fields))
	seen := make(map[int]bool, len(fields))
	for _, f := range fields {
		i, err := strconv.Atoi(f)
		if err != nil || i < 1 || i > n {
			return nil, fmt.Errorf("pick people by number, 1 to %d", n)
		}
		if !seen[i] {
			seen[i] = true
			picks = append(picks, i-1)
		}
	}
	return picks, nil
}
