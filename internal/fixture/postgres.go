package fixture

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/lib/pq"
	"golang.org/x/sync/errgroup"

	"github.com/Raymond9734/customer360-backend/internal/models"
)

// Querier is the subset of *sql.DB the Postgres source needs
type Querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

// Row types as they come out of the read model, before nesting
type (
	accountRow struct {
		CustomerID string
		Account    models.ContractAccount
	}
	premiseRow struct {
		CustomerID string
		Premise    models.Premise
	}
	servicePointRow struct {
		PremiseID string
		Point     models.ServicePoint
	}
)

type tables struct {
	customers     []models.Customer
	accounts      []accountRow
	premises      []premiseRow
	servicePoints []servicePointRow
	bills         []models.Bill
	payments      []models.Payment
	rates         []models.Rate
	readings      []models.MeterReading
	interactions  []models.Interaction
	cases         []models.Case
	programs      []models.Program
	eligibility   []models.Eligibility
}

// LoadPostgres reads every table of the customer read model concurrently and
// assembles them into a validated Dataset. It only issues SELECT statements.
func LoadPostgres(ctx context.Context, db Querier) (*models.Dataset, error) {
	var t tables

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) { t.customers, err = loadCustomers(gctx, db); return })
	g.Go(func() (err error) { t.accounts, err = loadAccounts(gctx, db); return })
	g.Go(func() (err error) { t.premises, err = loadPremises(gctx, db); return })
	g.Go(func() (err error) { t.servicePoints, err = loadServicePoints(gctx, db); return })
	g.Go(func() (err error) { t.bills, err = loadBills(gctx, db); return })
	g.Go(func() (err error) { t.payments, err = loadPayments(gctx, db); return })
	g.Go(func() (err error) { t.rates, err = loadRates(gctx, db); return })
	g.Go(func() (err error) { t.readings, err = loadReadings(gctx, db); return })
	g.Go(func() (err error) { t.interactions, err = loadInteractions(gctx, db); return })
	g.Go(func() (err error) { t.cases, err = loadCases(gctx, db); return })
	g.Go(func() (err error) { t.programs, err = loadPrograms(gctx, db); return })
	g.Go(func() (err error) { t.eligibility, err = loadEligibility(gctx, db); return })

	if err := g.Wait(); err != nil {
		return nil, err
	}

	ds := assemble(t)
	normalize(ds)

	if err := ds.Validate(); err != nil {
		return nil, fmt.Errorf("postgres dataset: %w", err)
	}
	return ds, nil
}

// assemble nests accounts, premises and service points under their owners
// and groups the flat tables into keyed lookups. Row order is preserved.
func assemble(t tables) *models.Dataset {
	ds := &models.Dataset{
		Customers:     t.customers,
		Programs:      t.programs,
		Bills:         map[string][]models.Bill{},
		Payments:      map[string][]models.Payment{},
		Rates:         map[string][]models.Rate{},
		MeterReadings: map[string][]models.MeterReading{},
		Interactions:  map[string][]models.Interaction{},
		Cases:         map[string][]models.Case{},
		Eligibility:   map[string][]models.Eligibility{},
	}

	byID := make(map[string]*models.Customer, len(ds.Customers))
	for i := range ds.Customers {
		byID[ds.Customers[i].ID] = &ds.Customers[i]
	}

	points := make(map[string][]models.ServicePoint)
	for _, sp := range t.servicePoints {
		points[sp.PremiseID] = append(points[sp.PremiseID], sp.Point)
	}

	for _, a := range t.accounts {
		if c, ok := byID[a.CustomerID]; ok {
			c.ContractAccounts = append(c.ContractAccounts, a.Account)
		}
	}
	for _, p := range t.premises {
		if c, ok := byID[p.CustomerID]; ok {
			p.Premise.ServicePoints = points[p.Premise.ID]
			c.Premises = append(c.Premises, p.Premise)
		}
	}

	for _, b := range t.bills {
		ds.Bills[b.AccountNumber] = append(ds.Bills[b.AccountNumber], b)
	}
	for _, p := range t.payments {
		ds.Payments[p.AccountNumber] = append(ds.Payments[p.AccountNumber], p)
	}
	for _, r := range t.rates {
		ds.Rates[r.AccountNumber] = append(ds.Rates[r.AccountNumber], r)
	}
	for _, r := range t.readings {
		ds.MeterReadings[r.ServicePointID] = append(ds.MeterReadings[r.ServicePointID], r)
	}
	for _, i := range t.interactions {
		ds.Interactions[i.CustomerID] = append(ds.Interactions[i.CustomerID], i)
	}
	for _, c := range t.cases {
		ds.Cases[c.CustomerID] = append(ds.Cases[c.CustomerID], c)
	}
	for _, e := range t.eligibility {
		ds.Eligibility[e.CustomerID] = append(ds.Eligibility[e.CustomerID], e)
	}

	return ds
}

// queryAll runs query and scans every row with scan
func queryAll[T any](ctx context.Context, db Querier, table, query string, scan func(*sql.Rows) (T, error)) ([]T, error) {
	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", table, err)
	}
	defer rows.Close()

	items := []T{}
	for rows.Next() {
		item, err := scan(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan %s: %w", table, err)
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating %s: %w", table, err)
	}

	return items, nil
}

func loadCustomers(ctx context.Context, db Querier) ([]models.Customer, error) {
	query := `
		SELECT id, business_partner_id, first_name, last_name, email, phone, segment, status
		FROM customers
		ORDER BY position, id`

	return queryAll(ctx, db, "customers", query, func(rows *sql.Rows) (models.Customer, error) {
		var c models.Customer
		err := rows.Scan(
			&c.ID,
			&c.BusinessPartnerID,
			&c.FirstName,
			&c.LastName,
			&c.Email,
			&c.Phone,
			&c.Segment,
			&c.Status,
		)
		return c, err
	})
}

func loadAccounts(ctx context.Context, db Querier) ([]accountRow, error) {
	query := `
		SELECT customer_id, account_number, service_type, billing_cycle
		FROM contract_accounts
		ORDER BY customer_id, position`

	return queryAll(ctx, db, "contract_accounts", query, func(rows *sql.Rows) (accountRow, error) {
		var r accountRow
		err := rows.Scan(&r.CustomerID, &r.Account.AccountNumber, &r.Account.ServiceType, &r.Account.BillingCycle)
		return r, err
	})
}

func loadPremises(ctx context.Context, db Querier) ([]premiseRow, error) {
	query := `
		SELECT customer_id, id, address, city, state, postal_code
		FROM premises
		ORDER BY customer_id, position`

	return queryAll(ctx, db, "premises", query, func(rows *sql.Rows) (premiseRow, error) {
		var r premiseRow
		err := rows.Scan(
			&r.CustomerID,
			&r.Premise.ID,
			&r.Premise.Address,
			&r.Premise.City,
			&r.Premise.State,
			&r.Premise.PostalCode,
		)
		return r, err
	})
}

func loadServicePoints(ctx context.Context, db Querier) ([]servicePointRow, error) {
	query := `
		SELECT premise_id, id, meter_number, service_type, status
		FROM service_points
		ORDER BY premise_id, id`

	return queryAll(ctx, db, "service_points", query, func(rows *sql.Rows) (servicePointRow, error) {
		var r servicePointRow
		err := rows.Scan(&r.PremiseID, &r.Point.ID, &r.Point.MeterNumber, &r.Point.ServiceType, &r.Point.Status)
		return r, err
	})
}

func loadBills(ctx context.Context, db Querier) ([]models.Bill, error) {
	query := `
		SELECT id, account_number, period_start, period_end, due_date, amount_cents, usage, usage_unit, status
		FROM bills
		ORDER BY account_number, period_end DESC`

	return queryAll(ctx, db, "bills", query, func(rows *sql.Rows) (models.Bill, error) {
		var b models.Bill
		err := rows.Scan(
			&b.ID,
			&b.AccountNumber,
			&b.PeriodStart,
			&b.PeriodEnd,
			&b.DueDate,
			&b.AmountCents,
			&b.Usage,
			&b.UsageUnit,
			&b.Status,
		)
		return b, err
	})
}

func loadPayments(ctx context.Context, db Querier) ([]models.Payment, error) {
	query := `
		SELECT id, account_number, amount_cents, paid_at, method, status
		FROM payments
		ORDER BY account_number, paid_at DESC`

	return queryAll(ctx, db, "payments", query, func(rows *sql.Rows) (models.Payment, error) {
		var p models.Payment
		err := rows.Scan(&p.ID, &p.AccountNumber, &p.AmountCents, &p.PaidAt, &p.Method, &p.Status)
		return p, err
	})
}

func loadRates(ctx context.Context, db Querier) ([]models.Rate, error) {
	query := `
		SELECT code, name, account_number, service_type, price_per_unit, unit, effective_from
		FROM rates
		ORDER BY account_number, effective_from DESC`

	return queryAll(ctx, db, "rates", query, func(rows *sql.Rows) (models.Rate, error) {
		var r models.Rate
		err := rows.Scan(
			&r.Code,
			&r.Name,
			&r.AccountNumber,
			&r.ServiceType,
			&r.PricePerUnit,
			&r.Unit,
			&r.EffectiveFrom,
		)
		return r, err
	})
}

func loadReadings(ctx context.Context, db Querier) ([]models.MeterReading, error) {
	query := `
		SELECT service_point_id, meter_number, read_at, value, unit, estimated
		FROM meter_readings
		ORDER BY service_point_id, read_at DESC`

	return queryAll(ctx, db, "meter_readings", query, func(rows *sql.Rows) (models.MeterReading, error) {
		var r models.MeterReading
		err := rows.Scan(&r.ServicePointID, &r.MeterNumber, &r.ReadAt, &r.Value, &r.Unit, &r.Estimated)
		return r, err
	})
}

func loadInteractions(ctx context.Context, db Querier) ([]models.Interaction, error) {
	query := `
		SELECT id, customer_id, channel, reason, notes, agent_id, occurred_at
		FROM interactions
		ORDER BY customer_id, occurred_at DESC`

	return queryAll(ctx, db, "interactions", query, func(rows *sql.Rows) (models.Interaction, error) {
		var i models.Interaction
		err := rows.Scan(&i.ID, &i.CustomerID, &i.Channel, &i.Reason, &i.Notes, &i.AgentID, &i.OccurredAt)
		return i, err
	})
}

func loadCases(ctx context.Context, db Querier) ([]models.Case, error) {
	query := `
		SELECT id, customer_id, title, priority, status, opened_at, closed_at
		FROM cases
		ORDER BY customer_id, opened_at DESC`

	return queryAll(ctx, db, "cases", query, func(rows *sql.Rows) (models.Case, error) {
		var c models.Case
		var closedAt sql.NullTime
		if err := rows.Scan(&c.ID, &c.CustomerID, &c.Title, &c.Priority, &c.Status, &c.OpenedAt, &closedAt); err != nil {
			return c, err
		}
		if closedAt.Valid {
			t := closedAt.Time.In(time.UTC)
			c.ClosedAt = &t
		}
		return c, nil
	})
}

func loadPrograms(ctx context.Context, db Querier) ([]models.Program, error) {
	query := `
		SELECT id, name, category, description, segments, status
		FROM programs
		ORDER BY id`

	return queryAll(ctx, db, "programs", query, func(rows *sql.Rows) (models.Program, error) {
		var p models.Program
		var segments []string
		if err := rows.Scan(&p.ID, &p.Name, &p.Category, &p.Description, pq.Array(&segments), &p.Status); err != nil {
			return p, err
		}
		p.Segments = make([]models.Segment, 0, len(segments))
		for _, s := range segments {
			p.Segments = append(p.Segments, models.Segment(s))
		}
		return p, nil
	})
}

func loadEligibility(ctx context.Context, db Querier) ([]models.Eligibility, error) {
	query := `
		SELECT program_id, customer_id, status, reason
		FROM program_eligibility
		ORDER BY customer_id, program_id`

	return queryAll(ctx, db, "program_eligibility", query, func(rows *sql.Rows) (models.Eligibility, error) {
		var e models.Eligibility
		err := rows.Scan(&e.ProgramID, &e.CustomerID, &e.Status, &e.Reason)
		return e, err
	})
}
