package api

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/NordCoder/uptime-monitor/internal/domain"
	"github.com/NordCoder/uptime-monitor/internal/domain/check"
	"github.com/NordCoder/uptime-monitor/internal/domain/history"
)

type Transactor interface {
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// NewCheck is the body of POST /checks.
type NewCheck struct {
	Frequency    check.Frequency `json:"frequency"`
	URL          string          `json:"url"`
	Method       check.Method    `json:"method"`
	ExpectedBody json.RawMessage `json:"expected_body"`
	Hook         *string         `json:"hook"`
}

type Usecase struct {
	Checks       check.Repo
	History      history.Repo
	Tx           Transactor
	HistoryLimit int
	clk          func() time.Time
}

func NewUsecase(checks check.Repo, hist history.Repo, tx Transactor, historyLimit int, clk func() time.Time) *Usecase {
	if clk == nil {
		clk = func() time.Time { return time.Now().UTC() }
	}
	return &Usecase{Checks: checks, History: hist, Tx: tx, HistoryLimit: historyLimit, clk: clk}
}

func (u *Usecase) List(ctx context.Context) ([]*check.Check, error) {
	return u.Checks.List(ctx)
}

func (u *Usecase) Get(ctx context.Context, id uuid.UUID) (*check.Check, error) {
	return u.Checks.GetByID(ctx, id)
}

func (u *Usecase) Create(ctx context.Context, in NewCheck) (*check.Check, error) {
	switch {
	case in.Frequency == "":
		return nil, &check.ValidationError{Msg: "frequency is required"}
	case in.URL == "":
		return nil, &check.ValidationError{Msg: "url is required"}
	case in.Method == "":
		return nil, &check.ValidationError{Msg: "method is required"}
	}
	now := u.clk()
	c := &check.Check{
		ID:           uuid.New(),
		Frequency:    in.Frequency,
		URL:          in.URL,
		Method:       in.Method,
		ExpectedBody: in.ExpectedBody,
		Hook:         in.Hook,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if !c.HasExpectedBody() {
		c.ExpectedBody = nil
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	if err := u.Checks.Create(ctx, c); err != nil {
		return nil, fmt.Errorf("create check: %w", err)
	}
	return c, nil
}

// Update applies p to the stored check under a row lock and validates the
// merged result, so a HEAD method and an expected body can never meet.
func (u *Usecase) Update(ctx context.Context, id uuid.UUID, p check.Patch) error {
	return u.Tx.WithTx(ctx, func(ctx context.Context) error {
		c, err := u.Checks.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		p.Apply(c, u.clk())
		if !c.HasExpectedBody() {
			c.ExpectedBody = nil
		}
		if err := c.Validate(); err != nil {
			return err
		}
		return u.Checks.Update(ctx, c)
	})
}

func (u *Usecase) Delete(ctx context.Context, id uuid.UUID) error {
	return u.Checks.Delete(ctx, id)
}

// ListHistory lists the check's records, newest first.
func (u *Usecase) ListHistory(ctx context.Context, id uuid.UUID) ([]*history.History, error) {
	if _, err := u.Checks.GetByID(ctx, id); err != nil {
		return nil, err
	}
	return u.History.ListByCheck(ctx, id, u.HistoryLimit)
}

// DeleteHistory reports domain.ErrNotFound when there was nothing to delete.
func (u *Usecase) DeleteHistory(ctx context.Context, id uuid.UUID) error {
	n, err := u.History.DeleteByCheck(ctx, id)
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}
