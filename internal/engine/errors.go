package engine

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrUnknownItem  = errors.New("unknown shop item")
	ErrAlreadyOwned = errors.New("item already owned")
	ErrUnknownExam  = errors.New("unknown exam")
	ErrExamFinished = errors.New("exam already finished")
)

// InsufficientFundsError is returned by spend operations when the balance
// cannot cover the price. The balance is left untouched.
type InsufficientFundsError struct {
	Balance int
	Needed  int
}

func (e InsufficientFundsError) Error() string {
	return fmt.Sprintf("insufficient funds: have %d, need %d", e.Balance, e.Needed)
}

// CooldownError is returned when starting an exam during its post-F
// cooldown window.
type CooldownError struct {
	ExamID    string
	Remaining time.Duration
}

func (e CooldownError) Error() string {
	return fmt.Sprintf("exam %s is on cooldown for another %s", e.ExamID, e.Remaining.Round(time.Second))
}
