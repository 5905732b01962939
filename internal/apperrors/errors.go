package apperrors

import "errors"

// ErrFetch indicates that the source document could not be retrieved.
var ErrFetch = errors.New("document fetch failed")

// ErrParse indicates that the expected table structure was absent from the document.
var ErrParse = errors.New("document parse failed")

// ErrValueConversion indicates that a market-cap value could not be coerced to a number.
var ErrValueConversion = errors.New("value conversion failed")

// ErrMissingRateFile indicates that the exchange-rate reference could not be read.
var ErrMissingRateFile = errors.New("exchange rate file unreadable")

// ErrMissingRate indicates that a required currency code is absent from the rate table.
var ErrMissingRate = errors.New("exchange rate missing")

// ErrPersistence indicates a write failure to the CSV or database sink.
var ErrPersistence = errors.New("persistence failed")
