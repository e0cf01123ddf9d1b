package excel

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// PagingStrategy decides how a worksheet is split into readable pages.
type PagingStrategy interface {
	// CalculatePagingRanges returns the available paging ranges.
	CalculatePagingRanges() []string
}

// FixedSizePagingStrategy splits the used area of a worksheet into
// pages of a fixed cell budget. Pages are whole rows, so the number of
// rows per page derives from the sheet width.
type FixedSizePagingStrategy struct {
	pageSize  int
	dimension string
}

func NewFixedSizePagingStrategy(pageSize int, sheet *Sheet) (*FixedSizePagingStrategy, error) {
	if pageSize <= 0 {
		pageSize = 5000
	}
	dimension, err := sheet.Dimension()
	if err != nil {
		return nil, err
	}
	return &FixedSizePagingStrategy{
		pageSize:  pageSize,
		dimension: dimension,
	}, nil
}

func (s *FixedSizePagingStrategy) CalculatePagingRanges() []string {
	startCol, startRow, endCol, endRow, err := ParseRange(s.dimension)
	if err != nil {
		return []string{}
	}

	totalCols := endCol - startCol + 1
	rowsPerPage := s.pageSize / totalCols
	if rowsPerPage < 1 {
		rowsPerPage = 1
	}

	var ranges []string
	currentRow := startRow
	for currentRow <= endRow {
		pageEndRow := currentRow + rowsPerPage - 1
		if pageEndRow > endRow {
			pageEndRow = endRow
		}

		startRange, _ := excelize.CoordinatesToCellName(startCol, currentRow)
		endRange, _ := excelize.CoordinatesToCellName(endCol, pageEndRow)
		ranges = append(ranges, fmt.Sprintf("%s:%s", startRange, endRange))

		currentRow = pageEndRow + 1
	}

	return ranges
}

// PagingRangeService answers paging queries for read tools.
type PagingRangeService struct {
	strategy PagingStrategy
}

func NewPagingRangeService(strategy PagingStrategy) *PagingRangeService {
	return &PagingRangeService{strategy: strategy}
}

func (s *PagingRangeService) GetPagingRanges() []string {
	return s.strategy.CalculatePagingRanges()
}

// FilterRemainingPagingRanges returns the ranges not yet read.
func (s *PagingRangeService) FilterRemainingPagingRanges(allRanges []string, knownRanges []string) []string {
	if len(knownRanges) == 0 {
		return allRanges
	}

	knownMap := make(map[string]bool)
	for _, r := range knownRanges {
		knownMap[r] = true
	}

	remaining := make([]string, 0)
	for _, r := range allRanges {
		if !knownMap[r] {
			remaining = append(remaining, r)
		}
	}

	return remaining
}

// FindNextRange returns the next range in the sequence after the current range
func (s *PagingRangeService) FindNextRange(allRanges []string, currentRange string) string {
	for i, r := range allRanges {
		if r == currentRange && i+1 < len(allRanges) {
			return allRanges[i+1]
		}
	}
	return ""
}
