package model

import "errors"

var (
	// ErrEmptyPanel means no usable data reached the engine.
	ErrEmptyPanel = errors.New("empty price panel")
	// ErrInvalidWindow means a window is non-positive or longer than the series.
	ErrInvalidWindow = errors.New("invalid window")
	// ErrInsufficientHistory means the panel holds fewer dates than a computation needs.
	// It also matches ErrInvalidWindow.
	ErrInsufficientHistory error = insufficientHistory{}
	// ErrInsufficientTickers means correlation was requested with fewer than two tickers.
	ErrInsufficientTickers = errors.New("insufficient tickers")

	ErrUnknownTicker = errors.New("unknown ticker")
	ErrUnknownField  = errors.New("unknown field")
	ErrMisaligned    = errors.New("ticker series are not aligned")
	ErrZeroBaseline  = errors.New("zero baseline price")

	// ErrInvalidTicker means a symbol is blank or collides with another after normalization.
	ErrInvalidTicker = errors.New("invalid ticker")
)

type insufficientHistory struct{}

func (insufficientHistory) Error() string { return "insufficient history" }

func (insufficientHistory) Is(target error) bool { return target == ErrInvalidWindow }
