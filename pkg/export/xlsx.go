package export

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/arnavshah/group-planner-go/pkg/models"
)

const sheetName = "Plans"

var header = []string{"Rank", "Slot", "Activity", "Attendees", "If need be", "Regular", "If need be total", "Well spaced"}

// WriteXLSX renders one row per session of every ranked plan
func WriteXLSX(w io.Writer, plans []models.RankedPlan) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#D9E1F2"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		return fmt.Errorf("create header style: %w", err)
	}

	for i, title := range header {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheetName, cell, title); err != nil {
			return err
		}
	}
	last, _ := excelize.CoordinatesToCellName(len(header), 1)
	if err := f.SetCellStyle(sheetName, "A1", last, headerStyle); err != nil {
		return err
	}
	if err := f.SetColWidth(sheetName, "B", "B", 20); err != nil {
		return err
	}
	if err := f.SetColWidth(sheetName, "C", "E", 28); err != nil {
		return err
	}

	row := 2
	for _, rp := range plans {
		for _, s := range rp.Sessions {
			var regular, maybe []string
			for _, a := range s.Attendees {
				if a.IfNeedBe {
					maybe = append(maybe, a.UserID)
				} else {
					regular = append(regular, a.UserID)
				}
			}
			values := []any{
				rp.Rank,
				s.Slot.Format(time.RFC3339),
				s.ActivityName,
				strings.Join(regular, ", "),
				strings.Join(maybe, ", "),
				rp.Score.RegularAttendees,
				rp.Score.IfNeedBeAttendees,
				rp.Score.WellSpaced,
			}
			cell, _ := excelize.CoordinatesToCellName(1, row)
			if err := f.SetSheetRow(sheetName, cell, &values); err != nil {
				return fmt.Errorf("write row %d: %w", row, err)
			}
			row++
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}
