package recommend

import "chart-signal/internal/domain"

// DirectionTable maps the labels one model can emit to a market direction.
// Labels missing from the table are neutral.
type DirectionTable struct {
	bullish map[string]struct{}
	bearish map[string]struct{}
}

func NewDirectionTable(bullish, bearish []string) DirectionTable {
	t := DirectionTable{
		bullish: make(map[string]struct{}, len(bullish)),
		bearish: make(map[string]struct{}, len(bearish)),
	}
	for _, l := range bullish {
		t.bullish[l] = struct{}{}
	}
	for _, l := range bearish {
		t.bearish[l] = struct{}{}
	}
	return t
}

// Lookup checks bullish first, so a label listed in both sets counts as bullish.
func (t DirectionTable) Lookup(label string) domain.Direction {
	if _, ok := t.bullish[label]; ok {
		return domain.DirectionBullish
	}
	if _, ok := t.bearish[label]; ok {
		return domain.DirectionBearish
	}
	return domain.DirectionNeutral
}

// candlestick patterns
var candlestickTable = NewDirectionTable(
	[]string{"Morning Star", "Hammer", "Bullish Engulfing", "Three White Soldiers"},
	[]string{"Three Black Crows", "Bearish Engulfing", "Evening Star", "Hanging Man"},
)

// market maker buy/sell models
var marketMakerTable = NewDirectionTable(
	[]string{"MMBM"},
	[]string{"MMSM"},
)

// chart formations
var formationTable = NewDirectionTable(
	[]string{
		"Bullish Bat",
		"Bullish Pennant",
		"Bullish Rectangle",
		"Cup and Handle",
		"Double Bottom",
		"Falling Wedge",
		"Inverse Head and Shoulders",
		"Rounding Bottom",
		"Triple Bottom",
	},
	[]string{
		"Bearish Bat",
		"Bearish Diamond",
		"Bearish Pennant",
		"Bearish Rectangle",
		"Double Top",
		"Head and Shoulders",
		"Inverse Cap and Handle",
		"Rising Wedge",
		"Rounding Top",
		"Triple Top",
	},
)

// direct buy/sell call
var directionTable = NewDirectionTable(
	[]string{"Buy"},
	[]string{"Sell"},
)

var tables = [domain.ModelCount]DirectionTable{
	candlestickTable,
	marketMakerTable,
	formationTable,
	directionTable,
}

// Table returns the direction table for a zero-based model slot.
func Table(slot int) (DirectionTable, bool) {
	if slot < 0 || slot >= len(tables) {
		return DirectionTable{}, false
	}
	return tables[slot], true
}
