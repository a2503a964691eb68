package xlsx

import (
	"context"
	"fmt"
	"io"

	"github.com/to404hanga/online_judge_frontend/model"
	"github.com/to404hanga/online_judge_frontend/service/exporter"
	"github.com/to404hanga/online_judge_frontend/service/exporter/common"
	"github.com/to404hanga/pkg404/logger"
	loggerv2 "github.com/to404hanga/pkg404/logger/v2"
	"github.com/xuri/excelize/v2"
)

type XLSXStandingsExporter struct {
	log loggerv2.Logger
}

var _ exporter.StandingsExporter = (*XLSXStandingsExporter)(nil)

func NewXLSXStandingsExporter(log loggerv2.Logger) *XLSXStandingsExporter {
	return &XLSXStandingsExporter{
		log: log,
	}
}

func (e *XLSXStandingsExporter) Export(ctx context.Context, contest *model.Contest, standings *model.Standings, writer io.Writer) error {
	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			e.log.ErrorContext(ctx, "close excel file failed", logger.Error(err))
		}
	}()

	sheetName := "Standings"
	index, err := f.NewSheet(sheetName)
	if err != nil {
		return fmt.Errorf("create sheet failed: %w", err)
	}
	f.SetActiveSheet(index)

	if err = e.writeRow(f, sheetName, 1, common.HeaderRow(standings)); err != nil {
		return fmt.Errorf("write header failed: %w", err)
	}

	for i, row := range standings.Table {
		if err = e.writeRow(f, sheetName, i+2, common.RecordRow(row)); err != nil {
			return fmt.Errorf("write row %d failed: %w", i, err)
		}
	}

	if err = f.Write(writer); err != nil {
		return fmt.Errorf("write excel file failed: %w", err)
	}
	return nil
}

func (e *XLSXStandingsExporter) writeRow(f *excelize.File, sheetName string, rowNum int, record []string) error {
	cell, err := excelize.CoordinatesToCellName(1, rowNum)
	if err != nil {
		return fmt.Errorf("build cell name failed: %w", err)
	}
	return f.SetSheetRow(sheetName, cell, &record)
}
