package sheetstore

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/xuri/excelize/v2"

	leaderboardservice "github.com/facematch/leaderboard/app/leaderboard/application"
	leaderboarddomain "github.com/facematch/leaderboard/app/leaderboard/domain"
)

var headerRow = []interface{}{"Name", "Score", "Date"}

// SheetStore persists scoreboards in a single .xlsx workbook: one worksheet
// per mode, one row per entry. It honors the same external contract as the
// Postgres store.
//
// excelize files are not safe for concurrent use, so every operation holds a
// mutex and reopens the workbook from disk.
type SheetStore struct {
	mu   sync.Mutex
	path string
}

var _ leaderboardservice.ScoreStore = (*SheetStore)(nil)

// New creates a SheetStore backed by the workbook at path. The file is
// created on first write.
func New(path string) *SheetStore {
	return &SheetStore{path: path}
}

// GetScoreboard reads the mode's worksheet. A missing workbook or worksheet
// means the mode was never written; malformed rows are skipped.
func (s *SheetStore) GetScoreboard(ctx context.Context, mode leaderboarddomain.Mode) (leaderboarddomain.RankedList, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := excelize.OpenFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, leaderboardservice.ErrScoreboardNotFound
		}
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	rows, err := f.GetRows(string(mode))
	if err != nil {
		var sheetErr excelize.ErrSheetNotExist
		if errors.As(err, &sheetErr) {
			return nil, leaderboardservice.ErrScoreboardNotFound
		}
		return nil, fmt.Errorf("failed to read sheet %q: %w", mode, err)
	}

	list := leaderboarddomain.RankedList{}
	for i, row := range rows {
		if i == 0 {
			// header
			continue
		}
		entry, ok := parseRow(row)
		if !ok {
			continue
		}
		list = append(list, entry)
	}
	return list, nil
}

// SaveScoreboard rewrites the mode's worksheet with the given list.
func (s *SheetStore) SaveScoreboard(ctx context.Context, mode leaderboarddomain.Mode, list leaderboarddomain.RankedList) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, created, err := s.openOrCreate()
	if err != nil {
		return err
	}
	defer f.Close()

	if err := s.writeSheet(f, mode, list); err != nil {
		return err
	}

	if created {
		return s.saveNew(f)
	}
	if err := f.Save(); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	return nil
}

// ClearScoreboard rewrites the mode's worksheet with only the header row.
// Clearing a mode that was never written is a no-op.
func (s *SheetStore) ClearScoreboard(ctx context.Context, mode leaderboarddomain.Mode) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := excelize.OpenFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	if err := s.writeSheet(f, mode, nil); err != nil {
		return err
	}
	if err := f.Save(); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	return nil
}

func (s *SheetStore) openOrCreate() (*excelize.File, bool, error) {
	f, err := excelize.OpenFile(s.path)
	if err == nil {
		return f, false, nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return nil, false, fmt.Errorf("failed to open workbook: %w", err)
	}
	return excelize.NewFile(), true, nil
}

func (s *SheetStore) saveNew(f *excelize.File) error {
	if err := f.SaveAs(s.path); err != nil {
		return fmt.Errorf("failed to create workbook %q: %w", s.path, err)
	}
	return nil
}

// writeSheet replaces the mode's worksheet contents: header row plus one row
// per entry.
func (s *SheetStore) writeSheet(f *excelize.File, mode leaderboarddomain.Mode, list leaderboarddomain.RankedList) error {
	name := string(mode)

	// Drop and recreate so stale rows beyond the new list length disappear.
	if idx, _ := f.GetSheetIndex(name); idx >= 0 {
		if err := f.DeleteSheet(name); err != nil {
			return fmt.Errorf("failed to reset sheet %q: %w", name, err)
		}
	}
	if _, err := f.NewSheet(name); err != nil {
		return fmt.Errorf("failed to create sheet %q: %w", name, err)
	}

	if err := f.SetSheetRow(name, "A1", &headerRow); err != nil {
		return fmt.Errorf("failed to write header for sheet %q: %w", name, err)
	}
	for i, entry := range list {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("failed to compute cell for row %d: %w", i+2, err)
		}
		row := []interface{}{entry.Name, entry.Score, entry.Date.UTC().Format(time.RFC3339)}
		if err := f.SetSheetRow(name, cell, &row); err != nil {
			return fmt.Errorf("failed to write row %d on sheet %q: %w", i+2, name, err)
		}
	}
	return nil
}

func parseRow(row []string) (leaderboarddomain.ScoreEntry, bool) {
	if len(row) < 3 {
		return leaderboarddomain.ScoreEntry{}, false
	}
	score, err := strconv.Atoi(row[1])
	if err != nil {
		return leaderboarddomain.ScoreEntry{}, false
	}
	date, err := time.Parse(time.RFC3339, row[2])
	if err != nil {
		return leaderboarddomain.ScoreEntry{}, false
	}
	return leaderboarddomain.ScoreEntry{Name: row[0], Score: score, Date: date}, true
}
