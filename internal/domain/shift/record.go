package shift

import (
	"fmt"
	"time"
)

const dayLayout = "2006-01-02"

// Record puts an actor on a shift for one day of the planning. BoxDay is
// the column of the planning grid the day was dropped on.
type Record struct {
	id      uint
	userID  uint
	shiftID uint
	day     string
	boxDay  int
}

func NewRecord(userID, shiftID uint, day string, boxDay int) (*Record, error) {
	if userID == 0 || shiftID == 0 {
		return nil, fmt.Errorf("user and shift are required")
	}
	if err := ValidateDay(day); err != nil {
		return nil, err
	}
	if boxDay < 0 {
		return nil, fmt.Errorf("boxDay must not be negative")
	}
	return &Record{userID: userID, shiftID: shiftID, day: day, boxDay: boxDay}, nil
}

func ReconstructRecord(id, userID, shiftID uint, day string, boxDay int) *Record {
	return &Record{id: id, userID: userID, shiftID: shiftID, day: day, boxDay: boxDay}
}

func (r *Record) ID() uint      { return r.id }
func (r *Record) UserID() uint  { return r.userID }
func (r *Record) ShiftID() uint { return r.shiftID }
func (r *Record) Day() string   { return r.day }
func (r *Record) BoxDay() int   { return r.boxDay }

// ValidateDay checks a YYYY-MM-DD day.
func ValidateDay(day string) error {
	if _, err := time.Parse(dayLayout, day); err != nil {
		return fmt.Errorf("day %q is not YYYY-MM-DD", day)
	}
	return nil
}

// ValidateRange checks that from and to are days with from <= to.
func ValidateRange(from, to string) error {
	if err := ValidateDay(from); err != nil {
		return err
	}
	if err := ValidateDay(to); err != nil {
		return err
	}
	if from > to {
		return fmt.Errorf("range starts after it ends")
	}
	return nil
}

// PlannedRecord is a record as shown on the planning, with its shift and
// the owner's team.
type PlannedRecord struct {
	Record   *Record
	Shift    *Shift
	UserName string
	TeamID   *uint
}

// RecordFilter selects planning rows between From and To inclusive.
// TeamIDs nil means every team.
type RecordFilter struct {
	From     string
	To       string
	EntityID *uint
	TeamIDs  []uint
}
