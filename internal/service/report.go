package service

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/shopspring/decimal"

	"bitget-margin-info/internal/api"
	"bitget-margin-info/internal/logger"
	"bitget-margin-info/internal/model"
)

// MarginDataSource is the subset of the Bitget client the report needs.
type MarginDataSource interface {
	GetLeverageInfo(ctx context.Context) (model.Payload, error)
	GetIsolatedInterestRateAndLimit(ctx context.Context, symbol string) (model.Payload, error)
	GetMarginCurrencies(ctx context.Context) (model.Payload, error)
}

type MarginReportService struct {
	Source MarginDataSource
	Out    io.Writer
	ErrOut io.Writer
}

func NewMarginReportService(source MarginDataSource, out, errOut io.Writer) *MarginReportService {
	return &MarginReportService{
		Source: source,
		Out:    out,
		ErrOut: errOut,
	}
}

// Run prints the leveraged pair list and the margin block for symbol. The two
// lookups are independent; a failure in one does not skip the other.
func (s *MarginReportService) Run(ctx context.Context, symbol string) error {
	var errs []error
	if err := s.ReportLeveragePairs(ctx); err != nil {
		errs = append(errs, err)
	}
	if err := s.ReportMarginInfo(ctx, symbol); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// RunAllBorrowable prints the leveraged pair list, then the margin block for every
// USDT pair whose base coin can be borrowed in isolated mode.
func (s *MarginReportService) RunAllBorrowable(ctx context.Context) error {
	var errs []error
	if err := s.ReportLeveragePairs(ctx); err != nil {
		errs = append(errs, err)
	}

	symbols, err := s.BorrowableSymbols(ctx)
	if err != nil {
		s.reportFailure(err)
		return errors.Join(append(errs, err)...)
	}
	logger.Info("Borrowable isolated pairs resolved", "count", len(symbols))

	for _, symbol := range symbols {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}
		if err := s.ReportMarginInfo(ctx, symbol); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (s *MarginReportService) ReportLeveragePairs(ctx context.Context) error {
	payload, err := s.Source.GetLeverageInfo(ctx)
	if err == nil {
		err = api.CheckCode(api.LeverageInfoEndpoint, payload)
	}
	if err != nil {
		s.reportFailure(err)
		return err
	}

	pairs := model.LeveragePairs(payload)
	fmt.Fprintln(s.Out, "Tradable leveraged spot pairs:")
	for _, p := range pairs {
		fmt.Fprintf(s.Out, "Pair: %s, Leverage: %s\n", p.Symbol, p.Leverage)
	}
	logger.Info("Leverage info fetched", "pairs", len(pairs))
	return nil
}

func (s *MarginReportService) ReportMarginInfo(ctx context.Context, symbol string) error {
	payload, err := s.Source.GetIsolatedInterestRateAndLimit(ctx, symbol)
	if err == nil {
		err = api.CheckCode(api.IsolatedInterestRateEndpoint, payload)
	}
	if err != nil {
		s.reportFailure(err)
		return err
	}

	rates := model.IsolatedMarginRates(payload)
	fmt.Fprintf(s.Out, "\n%s margin info:\n", symbol)
	if len(rates) == 0 {
		fmt.Fprintln(s.Out, "  (no data)")
	}
	for _, r := range rates {
		s.printRate(r)
	}
	logger.Info("Isolated margin info fetched", "symbol", symbol, "rows", len(rates))
	return nil
}

func (s *MarginReportService) printRate(r model.IsolatedMarginRate) {
	fmt.Fprintf(s.Out, "  Symbol: %s\n", r.Symbol)
	fmt.Fprintf(s.Out, "  Max leverage: %s\n", r.Leverage)
	fmt.Fprintf(s.Out, "  %s daily interest rate: %s\n", r.BaseCoin, r.BaseDailyInterestRate)
	fmt.Fprintf(s.Out, "  %s annual interest rate: %s\n", r.BaseCoin, r.BaseAnnuallyInterestRate)
	fmt.Fprintf(s.Out, "  %s max borrowable: %s\n", r.BaseCoin, r.BaseMaxBorrowableAmount)
	if hourly, err := HourlyBorrowRatePct(r.BaseDailyInterestRate); err == nil {
		fmt.Fprintf(s.Out, "  %s hourly borrow rate: %s%%\n", r.BaseCoin, hourly.String())
	}
	fmt.Fprintf(s.Out, "  %s daily interest rate: %s\n", r.QuoteCoin, r.QuoteDailyInterestRate)
	fmt.Fprintf(s.Out, "  %s annual interest rate: %s\n", r.QuoteCoin, r.QuoteAnnuallyInterestRate)
	fmt.Fprintf(s.Out, "  %s max borrowable: %s\n", r.QuoteCoin, r.QuoteMaxBorrowableAmount)
}

// BorrowableSymbols returns the USDT-quoted pairs whose base coin is borrowable
// in isolated mode, in the order the exchange lists them.
func (s *MarginReportService) BorrowableSymbols(ctx context.Context) ([]string, error) {
	payload, err := s.Source.GetMarginCurrencies(ctx)
	if err != nil {
		return nil, err
	}
	if err := api.CheckCode(api.MarginCurrenciesEndpoint, payload); err != nil {
		return nil, err
	}

	var symbols []string
	for _, c := range model.MarginCurrencies(payload) {
		if c.IsIsolatedBaseBorrowable && c.QuoteCoin == "USDT" {
			symbols = append(symbols, c.Symbol)
		}
	}
	return symbols, nil
}

// HourlyBorrowRatePct converts a daily rate fraction to an hourly percentage.
func HourlyBorrowRatePct(daily string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(daily)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid daily interest rate %q: %w", daily, err)
	}
	return d.Div(decimal.NewFromInt(24)).Mul(decimal.NewFromInt(100)), nil
}

func (s *MarginReportService) reportFailure(err error) {
	var statusErr *api.StatusError
	var codeErr *api.APICodeError
	switch {
	case errors.As(err, &statusErr):
		fmt.Fprintf(s.ErrOut, "Bitget API call failed: %d - %s\n", statusErr.StatusCode, statusErr.Body)
	case errors.As(err, &codeErr):
		logger.Error("Bitget API returned error code", "endpoint", codeErr.Endpoint, "code", codeErr.Code, "msg", codeErr.Msg)
		fmt.Fprintf(s.ErrOut, "Bitget API returned code %s: %s\n", codeErr.Code, codeErr.Msg)
	default:
		logger.Error("Bitget request failed", "error", err)
		fmt.Fprintf(s.ErrOut, "Bitget API call failed: %v\n", err)
	}
}
