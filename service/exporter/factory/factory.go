package factory

import (
	"sync"

	"github.com/to404hanga/online_judge_frontend/service/exporter"
	"github.com/to404hanga/online_judge_frontend/service/exporter/csv"
	"github.com/to404hanga/online_judge_frontend/service/exporter/xlsx"
	loggerv2 "github.com/to404hanga/pkg404/logger/v2"
)

type ExporterType string

const (
	UnknownExporter       ExporterType = ""
	CSVStandingsExporter  ExporterType = "csv"
	XLSXStandingsExporter ExporterType = "xlsx"
)

var ExporterSuffixMap = map[ExporterType]string{
	CSVStandingsExporter:  ".csv",
	XLSXStandingsExporter: ".xlsx",
}

var ExporterContentTypeMap = map[ExporterType]string{
	CSVStandingsExporter:  "text/csv",
	XLSXStandingsExporter: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
}

func ParseExporterType(format string) ExporterType {
	switch format {
	case "csv":
		return CSVStandingsExporter
	case "xlsx":
		return XLSXStandingsExporter
	default:
		return UnknownExporter
	}
}

type ExporterFactory struct {
	factory map[ExporterType]exporter.StandingsExporter
	log     loggerv2.Logger
	mux     sync.RWMutex
}

func NewExporterFactory(log loggerv2.Logger) *ExporterFactory {
	return &ExporterFactory{
		factory: make(map[ExporterType]exporter.StandingsExporter), // 延迟创建
		log:     log,
	}
}

func (f *ExporterFactory) GetExporter(exporterType ExporterType) exporter.StandingsExporter {
	f.mux.RLock()
	if exp, exists := f.factory[exporterType]; exists {
		f.mux.RUnlock()
		return exp
	}
	f.mux.RUnlock()

	f.mux.Lock()
	defer f.mux.Unlock()

	// 双重检查，避免重复创建
	if exp, exists := f.factory[exporterType]; exists {
		return exp
	}

	switch exporterType {
	case CSVStandingsExporter:
		f.factory[CSVStandingsExporter] = csv.NewCSVStandingsExporter(f.log)
		return f.factory[CSVStandingsExporter]
	case XLSXStandingsExporter:
		f.factory[XLSXStandingsExporter] = xlsx.NewXLSXStandingsExporter(f.log)
		return f.factory[XLSXStandingsExporter]
	}

	return nil
}
