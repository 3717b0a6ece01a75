package mysql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	mysqldrv "github.com/go-sql-driver/mysql"

	"concierge/internal/domain"
)

const errDeadlock = 1213

func isDeadlock(err error) bool {
	var me *mysqldrv.MySQLError
	return errors.As(err, &me) && me.Number == errDeadlock
}

func valStr(s string) any {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return s
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// likePattern wraps city for a substring LIKE, escaping wildcards with '!'.
func likePattern(city string) string {
	r := strings.NewReplacer("!", "!!", "%", "!%", "_", "!_")
	return "%" + r.Replace(strings.TrimSpace(city)) + "%"
}

// Repo implements domain.CandidateStore and domain.PlanRunRepository.
type Repo struct{ db *sql.DB }

func New(db *sql.DB) *Repo { return &Repo{db: db} }

func (r *Repo) Find(ctx context.Context, city string, kind domain.Kind) ([]domain.Candidate, error) {
	if kind == domain.KindRestaurant {
		return r.findRestaurants(ctx, city)
	}
	return r.findPOIs(ctx, city)
}

func (r *Repo) findPOIs(ctx context.Context, city string) ([]domain.Candidate, error) {
	rows, err := r.db.QueryContext(ctx, findPOIsSQL, likePattern(city))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Candidate
	for rows.Next() {
		c := domain.Candidate{Kind: domain.KindActivity}
		var tags, tier string
		var wheelchair, child int
		if err := rows.Scan(&c.Title, &c.Address, &c.Geo.Lat, &c.Geo.Lon, &tags, &tier,
			&c.DurationMinutes, &wheelchair, &child); err != nil {
			return nil, err
		}
		c.Tags = domain.SplitTags(tags)
		// raw tier on purpose; the selection engine normalizes it against the request
		c.PriceTier = domain.PriceTier(tier)
		c.WheelchairFriendly = wheelchair != 0
		c.ChildFriendly = child != 0
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *Repo) findRestaurants(ctx context.Context, city string) ([]domain.Candidate, error) {
	rows, err := r.db.QueryContext(ctx, findRestaurantsSQL, likePattern(city))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Candidate
	for rows.Next() {
		c := domain.Candidate{Kind: domain.KindRestaurant}
		var tags, tier string
		if err := rows.Scan(&c.Title, &c.Address, &c.Geo.Lat, &c.Geo.Lon, &tags, &tier); err != nil {
			return nil, err
		}
		c.Tags = domain.SplitTags(tags)
		if len(c.Tags) == 0 {
			c.Tags = []string{"restaurant"}
		}
		c.PriceTier = domain.PriceTier(tier)
		out = append(out, c)
	}
	return out, rows.Err()
}

// InsertIfAbsent reports true only when a new row was written; an existing
// (city, name) pair is a no-op, also under concurrent inserts.
func (r *Repo) InsertIfAbsent(ctx context.Context, c domain.Candidate, city string) (bool, error) {
	ok, err := r.insertIfAbsent(ctx, c, city)
	if isDeadlock(err) {
		// concurrent upserts on the same unique key can deadlock; the retry sees the winner's row
		ok, err = r.insertIfAbsent(ctx, c, city)
	}
	return ok, err
}

func (r *Repo) insertIfAbsent(ctx context.Context, c domain.Candidate, city string) (bool, error) {
	tier := string(domain.NormalizeTier(string(c.PriceTier), domain.TierMid))
	var (
		res sql.Result
		err error
	)
	switch c.Kind {
	case domain.KindRestaurant:
		res, err = r.db.ExecContext(ctx, insertRestaurantSQL,
			c.Title, c.Address, c.Geo.Lat, c.Geo.Lon, domain.JoinTags(c.Tags), tier, city)
	default:
		minutes := c.DurationMinutes
		if minutes <= 0 {
			minutes = 90
		}
		res, err = r.db.ExecContext(ctx, insertPOISQL,
			c.Title, c.Address, c.Geo.Lat, c.Geo.Lon, domain.JoinTags(c.Tags), tier, minutes,
			boolInt(c.WheelchairFriendly), boolInt(c.ChildFriendly), city)
	}
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}

// SaveRun writes booking, preferences and the run in one transaction.
func (r *Repo) SaveRun(ctx context.Context, run domain.PlanRun) (err error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	b := run.Booking
	res, err := tx.ExecContext(ctx, insertBookingSQL,
		b.StartDate.Format(domain.DateLayout), b.EndDate.Format(domain.DateLayout), b.Location, string(b.PartyType))
	if err != nil {
		return fmt.Errorf("insert booking: %w", err)
	}
	bookingID, err := res.LastInsertId()
	if err != nil {
		return err
	}

	p := run.Preferences
	res, err = tx.ExecContext(ctx, insertPreferenceSQL,
		string(domain.NormalizeTier(string(p.BudgetTier), domain.TierMid)),
		strings.Join(p.Interests, ","), valStr(p.Mobility), valStr(p.Dietary))
	if err != nil {
		return fmt.Errorf("insert preferences: %w", err)
	}
	prefID, err := res.LastInsertId()
	if err != nil {
		return err
	}

	if _, err = tx.ExecContext(ctx, insertPlanRunSQL,
		run.ID, bookingID, prefID, run.UserQuery, run.WeatherSummary, string(run.ResultJSON), run.CreatedAt.UTC()); err != nil {
		return fmt.Errorf("insert plan run: %w", err)
	}
	return tx.Commit()
}

func (r *Repo) GetRun(ctx context.Context, id string) (domain.PlanRun, error) {
	var (
		run               domain.PlanRun
		resultJSON        []byte
		location, party   string
		tier, interests   string
		mobility, dietary sql.NullString
	)
	err := r.db.QueryRowContext(ctx, getPlanRunSQL, id).Scan(
		&run.ID, &run.UserQuery, &run.WeatherSummary, &resultJSON, &run.CreatedAt,
		&run.Booking.StartDate, &run.Booking.EndDate, &location, &party,
		&tier, &interests, &mobility, &dietary,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.PlanRun{}, domain.ErrNotFound
		}
		return domain.PlanRun{}, err
	}
	run.ResultJSON = resultJSON
	run.Booking.Location = location
	run.Booking.PartyType = domain.PartyType(party)
	run.Preferences = domain.Preferences{
		BudgetTier: domain.PriceTier(tier),
		Interests:  domain.SplitTags(interests),
		Mobility:   mobility.String,
		Dietary:    dietary.String,
	}
	return run, nil
}
