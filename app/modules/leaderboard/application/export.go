package leaderboardservice

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

const scorecardSheet = "Scorecard"

// BuildScorecardXLSX renders the leaderboard as a one-sheet workbook: a par
// row, then one row per player in standings order with hole-by-hole gross
// scores and totals. Unplayed holes are left blank.
func BuildScorecardXLSX(lb Leaderboard) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), scorecardSheet); err != nil {
		return nil, fmt.Errorf("failed to name sheet: %w", err)
	}

	header := []any{"Player", "HCP"}
	for hole := 1; hole <= holesPerRound; hole++ {
		header = append(header, hole)
	}
	header = append(header, "Out", "In", "Gross", "Net", "To Par")
	if err := writeRow(f, 1, header); err != nil {
		return nil, err
	}

	parRow := []any{"Par", ""}
	if len(lb.Players) > 0 {
		for _, cell := range lb.Players[0].HoleScores {
			parRow = append(parRow, cell.Par)
		}
	} else {
		for hole := 1; hole <= holesPerRound; hole++ {
			parRow = append(parRow, "")
		}
	}
	parRow = append(parRow, lb.Front9Par, lb.Back9Par, lb.TotalPar, "", "")
	if err := writeRow(f, 2, parRow); err != nil {
		return nil, err
	}

	for i, player := range lb.Players {
		row := []any{player.Player.Name, player.Player.DisplayHandicap}
		for _, cell := range player.HoleScores {
			if cell.Gross != nil {
				row = append(row, *cell.Gross)
			} else {
				row = append(row, "")
			}
		}
		toPar := "E"
		if player.ToPar != 0 {
			toPar = fmt.Sprintf("%+d", player.ToPar)
		}
		row = append(row, player.Front9Gross, player.Back9Gross, player.GrossTotal, player.NetTotal, toPar)
		if err := writeRow(f, 3+i, row); err != nil {
			return nil, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func writeRow(f *excelize.File, row int, values []any) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	if err := f.SetSheetRow(scorecardSheet, cell, &values); err != nil {
		return fmt.Errorf("failed to write row %d: %w", row, err)
	}
	return nil
}
