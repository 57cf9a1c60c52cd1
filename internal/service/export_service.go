package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/Vaidy74/Yathashakti-sub001/internal/dto"
	"github.com/Vaidy74/Yathashakti-sub001/internal/model"
	"github.com/Vaidy74/Yathashakti-sub001/internal/repository"
)

var ErrExportGenerateFail = errors.New("导出文件生成失败")

// ExportService 导出业务接口
type ExportService interface {
	// ExportLedger 将指定期间的台账条目导出为 Excel 文件
	// 返回文件内容、建议文件名
	ExportLedger(ctx context.Context, req *dto.LedgerExportRequest) (*bytes.Buffer, string, error)
}

type exportService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewExportService 创建 ExportService 实例
func NewExportService(repo *repository.Repository, logger *zap.Logger) ExportService {
	return &exportService{repo: repo, logger: logger}
}

// 台账条目类型的展示名
var ledgerTypeNames = map[string]string{
	model.LedgerTypeDisbursement: "拨付",
	model.LedgerTypeRepayment:    "还款",
	model.LedgerTypeAdjustment:   "调整",
}

func (s *exportService) ExportLedger(ctx context.Context, req *dto.LedgerExportRequest) (*bytes.Buffer, string, error) {
	from, to, err := parsePeriod(req.From, req.To)
	if err != nil {
		return nil, "", err
	}

	entries, err := s.repo.Ledger.ListForExport(ctx, from, to)
	if err != nil {
		s.logger.Error("查询待导出台账失败", zap.Error(err))
		return nil, "", err
	}

	f := excelize.NewFile()
	defer f.Close()

	sheetName := "资金台账"
	idx, _ := f.NewSheet(sheetName)
	f.SetActiveSheet(idx)
	f.DeleteSheet("Sheet1")

	// 列宽
	f.SetColWidth(sheetName, "A", "A", 12)
	f.SetColWidth(sheetName, "B", "B", 10)
	f.SetColWidth(sheetName, "C", "C", 14)
	f.SetColWidth(sheetName, "D", "D", 20)
	f.SetColWidth(sheetName, "E", "E", 36)
	f.SetColWidth(sheetName, "F", "F", 40)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})

	// 标题行
	f.SetCellValue(sheetName, "A1", "资金台账")
	f.MergeCell(sheetName, "A1", "F1")
	f.SetCellStyle(sheetName, "A1", "A1", headerStyle)

	// 表头
	headers := []string{"日期", "类型", "金额（元）", "受助人", "资助金ID", "备注"}
	for i, h := range headers {
		col, _ := excelize.ColumnNumberToName(i + 1)
		f.SetCellValue(sheetName, fmt.Sprintf("%s2", col), h)
		f.SetCellStyle(sheetName, fmt.Sprintf("%s2", col), fmt.Sprintf("%s2", col), headerStyle)
	}

	// 数据行
	row := 3
	for i := range entries {
		entry := &entries[i]

		typeName := ledgerTypeNames[entry.Type]
		if typeName == "" {
			typeName = entry.Type
		}

		granteeName := ""
		grantID := ""
		if entry.GrantID != nil {
			grantID = *entry.GrantID
		}
		if entry.Grant != nil && entry.Grant.Grantee != nil {
			granteeName = entry.Grant.Grantee.Name
		}

		f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), fmtDate(entry.EntryDate))
		f.SetCellValue(sheetName, fmt.Sprintf("B%d", row), typeName)
		// 分 → 元，保留两位
		f.SetCellValue(sheetName, fmt.Sprintf("C%d", row), float64(entry.Amount)/100)
		f.SetCellValue(sheetName, fmt.Sprintf("D%d", row), granteeName)
		f.SetCellValue(sheetName, fmt.Sprintf("E%d", row), grantID)
		f.SetCellValue(sheetName, fmt.Sprintf("F%d", row), entry.Description)
		row++
	}

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		s.logger.Error("写入 Excel 失败", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}

	filename := fmt.Sprintf("资金台账_%s.xlsx", time.Now().Format("20060102"))
	return buf, filename, nil
}
