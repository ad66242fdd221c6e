package tui

// sparklineChars maps levels 0..7 to the block elements ▁▂▃▄▅▆▇█.
var sparklineChars = [8]rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

// clampPercent limits v to [0, 100].
func clampPercent(v float64) float64 {
	return min(max(v, 0), 100)
}

// RenderSparkline renders percentages (0..100) as one block per value.
func RenderSparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}
	runes := make([]rune, len(values))
	for i, v := range values {
		runes[i] = sparklineChars[min(int(clampPercent(v)/100*7), 7)]
	}
	return string(runes)
}

// brailleDots maps (dot column 0-1, dot row 0-3) to the bit of that dot in
// a braille cell (U+2800 + bits).
var brailleDots = [2][4]rune{
	{0x01, 0x02, 0x04, 0x40},
	{0x08, 0x10, 0x20, 0x80},
}

// RenderBrailleChart plots percentages (0..100) on a rows x width grid of
// braille cells, two samples per cell, most recent on the right. Older
// samples that do not fit are dropped.
func RenderBrailleChart(values []float64, width, rows int) []string {
	if width <= 0 || rows <= 0 || len(values) == 0 {
		return nil
	}
	dotRows, dotCols := rows*4, width*2
	if len(values) > dotCols {
		values = values[len(values)-dotCols:]
	}
	offset := dotCols - len(values)

	grid := make([][]rune, rows)
	for r := range grid {
		grid[r] = make([]rune, width)
		for c := range grid[r] {
			grid[r][c] = 0x2800
		}
	}
	for i, v := range values {
		dotCol := offset + i
		dotRow := dotRows - 1 - int(clampPercent(v)/100*float64(dotRows-1))
		grid[dotRow/4][dotCol/2] |= brailleDots[dotCol%2][dotRow%4]
	}

	lines := make([]string, rows)
	for r := range grid {
		lines[r] = string(grid[r])
	}
	return lines
}
