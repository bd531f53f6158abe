// Package textgrid reads Praat TextGrid annotation files.
//
// Both the verbose "long" format and the value-only "short" format are
// supported. Praat writes the same value sequence in both; the long format
// merely decorates values with "key = " labels and structural lines. The
// parser therefore reduces the file to a stream of values and consumes them
// positionally.
package textgrid

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Interval is one labeled [Min, Max) time range on a tier.
type Interval struct {
	Min   float64
	Max   float64
	Label string
}

// Duration returns the interval length in seconds.
func (iv Interval) Duration() float64 {
	return iv.Max - iv.Min
}

// Tier is a named, time-ordered track of intervals. Point tiers ("TextTier")
// keep their position in the tier list but carry no intervals.
type Tier struct {
	Class     string
	Name      string
	Min       float64
	Max       float64
	Intervals []Interval
}

// IsIntervalTier reports whether the tier holds intervals rather than points.
func (t *Tier) IsIntervalTier() bool {
	return t.Class == "IntervalTier"
}

// TextGrid is a parsed annotation object: an ordered list of tiers covering
// the [Min, Max] timeline.
type TextGrid struct {
	Min   float64
	Max   float64
	Tiers []Tier
}

// TierIndex returns the 1-based index of the named tier. The scan covers the
// whole tier list, so the last tier wins when names are duplicated.
func (tg *TextGrid) TierIndex(name string) (int, bool) {
	index := 0
	for i := range tg.Tiers {
		if tg.Tiers[i].Name == name {
			index = i + 1
		}
	}
	if index == 0 {
		return 0, false
	}
	return index, true
}

// ReadFile parses a TextGrid file.
func ReadFile(filename string) (*TextGrid, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open annotation file: %w", err)
	}
	defer f.Close()

	values, err := scanValues(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", filename, err)
	}

	tg, err := parse(values)
	if err != nil {
		return nil, fmt.Errorf("malformed TextGrid %s: %w", filename, err)
	}
	return tg, nil
}

// scanValues reduces the file to its ordered value stream.
func scanValues(f *os.File) ([]string, error) {
	var values []string
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		if idx := strings.Index(line, "="); idx >= 0 {
			values = append(values, strings.TrimSpace(line[idx+1:]))
			continue
		}
		// Structural lines like "item []:" or "intervals [1]:" carry no value
		if strings.HasSuffix(line, ":") {
			continue
		}
		values = append(values, line)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return values, nil
}

// cursor walks the value stream.
type cursor struct {
	values []string
	pos    int
}

func (c *cursor) next() (string, error) {
	if c.pos >= len(c.values) {
		return "", fmt.Errorf("unexpected end of file at value %d", c.pos)
	}
	v := c.values[c.pos]
	c.pos++
	return v, nil
}

func (c *cursor) nextString() (string, error) {
	v, err := c.next()
	if err != nil {
		return "", err
	}
	return unquote(v), nil
}

func (c *cursor) nextFloat() (float64, error) {
	v, err := c.next()
	if err != nil {
		return 0, err
	}
	n, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("expected number, got %q", v)
	}
	return n, nil
}

func (c *cursor) nextInt() (int, error) {
	n, err := c.nextFloat()
	if err != nil {
		return 0, err
	}
	return int(n), nil
}

// unquote strips surrounding quotes and collapses Praat's doubled-quote escape.
func unquote(v string) string {
	if len(v) >= 2 && strings.HasPrefix(v, `"`) && strings.HasSuffix(v, `"`) {
		v = v[1 : len(v)-1]
	}
	return strings.ReplaceAll(v, `""`, `"`)
}

func parse(values []string) (*TextGrid, error) {
	c := &cursor{values: values}

	fileType, err := c.nextString()
	if err != nil {
		return nil, err
	}
	if fileType != "ooTextFile" {
		return nil, fmt.Errorf("not an ooTextFile (file type %q)", fileType)
	}
	objClass, err := c.nextString()
	if err != nil {
		return nil, err
	}
	if objClass != "TextGrid" {
		return nil, fmt.Errorf("not a TextGrid (object class %q)", objClass)
	}

	tg := &TextGrid{}
	if tg.Min, err = c.nextFloat(); err != nil {
		return nil, err
	}
	if tg.Max, err = c.nextFloat(); err != nil {
		return nil, err
	}

	// Long format writes "tiers? <exists>" as one line, short format a bare
	// "<exists>"; match on the marker rather than the exact value
	flag, err := c.next()
	if err != nil {
		return nil, err
	}
	if !strings.Contains(flag, "<exists>") {
		// "<absent>" means the grid has no tiers at all
		return tg, nil
	}

	size, err := c.nextInt()
	if err != nil {
		return nil, err
	}

	for i := 0; i < size; i++ {
		tier, err := parseTier(c)
		if err != nil {
			return nil, fmt.Errorf("tier %d: %w", i+1, err)
		}
		tg.Tiers = append(tg.Tiers, tier)
	}

	return tg, nil
}

func parseTier(c *cursor) (Tier, error) {
	var t Tier
	var err error

	if t.Class, err = c.nextString(); err != nil {
		return t, err
	}
	if t.Name, err = c.nextString(); err != nil {
		return t, err
	}
	if t.Min, err = c.nextFloat(); err != nil {
		return t, err
	}
	if t.Max, err = c.nextFloat(); err != nil {
		return t, err
	}

	count, err := c.nextInt()
	if err != nil {
		return t, err
	}

	switch t.Class {
	case "IntervalTier":
		t.Intervals = make([]Interval, 0, count)
		for i := 0; i < count; i++ {
			var iv Interval
			if iv.Min, err = c.nextFloat(); err != nil {
				return t, err
			}
			if iv.Max, err = c.nextFloat(); err != nil {
				return t, err
			}
			if iv.Label, err = c.nextString(); err != nil {
				return t, err
			}
			if iv.Max < iv.Min {
				return t, fmt.Errorf("interval %d: xmax %.4f before xmin %.4f", i+1, iv.Max, iv.Min)
			}
			t.Intervals = append(t.Intervals, iv)
		}
	case "TextTier":
		// Point tiers hold (time, mark) pairs; consumed to keep the
		// stream aligned, but not retained
		for i := 0; i < count; i++ {
			if _, err = c.nextFloat(); err != nil {
				return t, err
			}
			if _, err = c.nextString(); err != nil {
				return t, err
			}
		}
	default:
		return t, fmt.Errorf("unknown tier class %q", t.Class)
	}

	return t, nil
}
