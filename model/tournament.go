package model

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
)

type (
	// Tournament is a console tournament snapshot.
	// Field order is the export column order.
	Tournament struct {
		Id          string    `json:"id"`
		Title       string    `json:"title"`
		Description string    `json:"description"`
		Category    int       `json:"category"`
		SortOrder   SortOrder `json:"sort_order"`
		Operator    Operator  `json:"operator"`
		Size        int       `json:"size"`
		MaxSize     int       `json:"max_size"`
		MaxNumScore int       `json:"max_num_score"`
		CanEnter    bool      `json:"can_enter"`
		Duration    int64     `json:"duration"`
		CreateTime  int64     `json:"create_time"`
		StartTime   int64     `json:"start_time"`
		EndTime     int64     `json:"end_time"`
		StartActive int64     `json:"start_active"`
		EndActive   int64     `json:"end_active"`
		NextReset   int64     `json:"next_reset"`
		Metadata    Metadata  `json:"metadata"`
	}

	TournamentList struct {
		Tournaments []Tournament `json:"tournaments"`
		TotalCount  int          `json:"total_count"`
	}
)

// Tournament list / get / delete RPC requests.
type (
	// ListTournamentsRequest has no filters: tournaments are fetched all at once.
	ListTournamentsRequest struct{}

	TournamentRequest struct {
		Id string `json:"id"`
	}
)

// Create tournament RPC request.
type CreateTournamentRequest struct {
	Title        string    `json:"title"`
	Description  string    `json:"description,omitempty"`
	Category     int       `json:"category"`
	SortOrder    SortOrder `json:"sort_order"`
	Operator     Operator  `json:"operator"`
	MaxSize      int       `json:"max_size,omitempty"`
	MaxNumScore  int       `json:"max_num_score,omitempty"`
	Duration     int64     `json:"duration"`
	StartTime    int64     `json:"start_time,omitempty"`
	EndTime      int64     `json:"end_time,omitempty"`
	Reset        string    `json:"reset,omitempty"`
	Metadata     Metadata  `json:"metadata,omitempty"`
	JoinRequired bool      `json:"join_required,omitempty"`
}

// Validate checks the create request, both sides of the RPC use it.
func (r CreateTournamentRequest) Validate() error {
	if strings.TrimSpace(r.Title) == "" {
		return fmt.Errorf("%s: empty", "title")
	}
	switch r.Operator {
	case BestOperator, SetOperator, IncrementOperator:
	default:
		return fmt.Errorf("%s: should be one of 'best', 'set', or 'incr'", "operator")
	}
	switch r.SortOrder {
	case AscendingSortOrder, DescendingSortOrder:
	default:
		return fmt.Errorf("%s: should be one of 'asc' or 'desc'", "sort_order")
	}
	if r.Duration <= 0 {
		return fmt.Errorf("%s: must be GT 0", "duration")
	}
	if r.Category < 0 || r.Category >= 128 {
		return fmt.Errorf("%s: must be in [0, 127]", "category")
	}
	if r.StartTime < 0 {
		return fmt.Errorf("%s: must be GTE 0", "start_time")
	}
	if r.EndTime != 0 && r.EndTime <= r.StartTime {
		return fmt.Errorf("%s: must be GT start_time, use 0 for a tournament that never ends", "end_time")
	}
	if r.MaxSize < 0 {
		return fmt.Errorf("%s: must be GTE 0", "max_size")
	}
	if r.MaxNumScore < 0 {
		return fmt.Errorf("%s: must be GTE 0", "max_num_score")
	}
	if r.Reset != "" {
		if _, err := ParseResetSchedule(r.Reset); err != nil {
			return err
		}
	}

	return nil
}

// NewCreateTournamentRequest builds a valid CreateTournamentRequest.
// An empty sortOrder defaults to descending, an empty operator to best.
func NewCreateTournamentRequest(title string, sortOrder SortOrder, operator Operator, duration int64, opts ...TournamentOption) (CreateTournamentRequest, error) {
	if sortOrder == "" {
		sortOrder = DescendingSortOrder
	}
	if operator == "" {
		operator = BestOperator
	}

	req := CreateTournamentRequest{
		Title:     title,
		SortOrder: sortOrder,
		Operator:  operator,
		Duration:  duration,
	}
	for _, opt := range opts {
		opt(&req)
	}
	if err := req.Validate(); err != nil {
		return CreateTournamentRequest{}, err
	}

	return req, nil
}

// TournamentOption sets an optional CreateTournamentRequest field.
type TournamentOption func(r *CreateTournamentRequest)

func WithDescription(description string) TournamentOption {
	return func(r *CreateTournamentRequest) { r.Description = description }
}

func WithCategory(category int) TournamentOption {
	return func(r *CreateTournamentRequest) { r.Category = category }
}

func WithLimits(maxSize, maxNumScore int) TournamentOption {
	return func(r *CreateTournamentRequest) {
		r.MaxSize = maxSize
		r.MaxNumScore = maxNumScore
	}
}

func WithSchedule(startTime, endTime int64, reset string) TournamentOption {
	return func(r *CreateTournamentRequest) {
		r.StartTime = startTime
		r.EndTime = endTime
		r.Reset = reset
	}
}

func WithMetadata(metadata Metadata) TournamentOption {
	return func(r *CreateTournamentRequest) { r.Metadata = metadata }
}

func WithJoinRequired(joinRequired bool) TournamentOption {
	return func(r *CreateTournamentRequest) { r.JoinRequired = joinRequired }
}

// NewTournamentRequest builds a TournamentRequest for a valid non-nil tournament id.
func NewTournamentRequest(id string) (TournamentRequest, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return TournamentRequest{}, fmt.Errorf("%s: invalid: %w", "id", err)
	}
	if parsed == uuid.Nil {
		return TournamentRequest{}, fmt.Errorf("%s: nil UUID", "id")
	}

	return TournamentRequest{Id: parsed.String()}, nil
}

// ParseResetSchedule parses a standard 5-field CRON expression.
func ParseResetSchedule(expr string) (cron.Schedule, error) {
	schedule, err := cron.ParseStandard(expr)
	if err != nil {
		return nil, fmt.Errorf("%s: should be a valid CRON expression: %w", "reset", err)
	}

	return schedule, nil
}
