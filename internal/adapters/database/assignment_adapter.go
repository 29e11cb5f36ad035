package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/doug-martin/goqu/v9"
	"github.com/lib/pq"

	"github.com/avaintel/staffing-rates/internal/domain/entities"
	"github.com/avaintel/staffing-rates/internal/domain/rates"
	"github.com/avaintel/staffing-rates/internal/domain/repositories"
	"github.com/avaintel/staffing-rates/internal/infrastructure/clients/postgres"
	apperrors "github.com/avaintel/staffing-rates/pkg/errors"
)

// AssignmentAdapter implements AssignmentRepository against the staffing
// transaction table
type AssignmentAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewAssignmentAdapter creates a new assignment adapter
func NewAssignmentAdapter(client *postgres.Client) repositories.AssignmentRepository {
	return &AssignmentAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// metricConditions restricts rows to a non-null active metric within its
// sanity bounds
func metricConditions(metric rates.Metric) []goqu.Expression {
	min, max := metric.Bounds()
	col := metric.Column()
	return []goqu.Expression{
		goqu.C(col).IsNotNull(),
		goqu.C(col).Between(goqu.Range(min, max)),
	}
}

func scopeConditions(filter repositories.ScopeFilter) []goqu.Expression {
	conds := metricConditions(filter.Metric)
	conds = append(conds,
		goqu.L("specialty ~* ?", filter.SpecialtyPattern),
		goqu.L(fmt.Sprintf("start_date >= CURRENT_DATE - INTERVAL '%d months'", filter.LookbackMonths)),
	)
	if profession, ok := rates.ProfessionRestriction(filter.Profession); ok {
		conds = append(conds, goqu.C("profession").Eq(profession))
	}
	if filter.City != "" {
		conds = append(conds, goqu.L("LOWER(city) = LOWER(?)", filter.City))
	}
	if filter.State != "" {
		conds = append(conds, goqu.L("UPPER(state) = UPPER(?)", filter.State))
	}
	return conds
}

// ScopeStatistics aggregates the active metric over one geographic scope.
// Groups are per specialty variant; the variant with the most samples wins.
// Returns nil when no variant clears the sample threshold.
func (a *AssignmentAdapter) ScopeStatistics(ctx context.Context, filter repositories.ScopeFilter) (*entities.RateStatistics, error) {
	col := filter.Metric.Column()

	query, args, err := a.db.From("assignments").
		Select(
			goqu.C("specialty"),
			goqu.L(fmt.Sprintf("AVG(%s)", col)).As("avg_rate"),
			goqu.L(fmt.Sprintf("MIN(%s)", col)).As("min_rate"),
			goqu.L(fmt.Sprintf("MAX(%s)", col)).As("max_rate"),
			goqu.L(fmt.Sprintf("PERCENTILE_CONT(%g) WITHIN GROUP (ORDER BY %s)", filter.Metric.FloorPercentile(), col)).As("competitive_rate"),
			goqu.L("AVG(bill_rate) FILTER (WHERE bill_rate BETWEEN 30 AND 800)").As("avg_bill_rate"),
			goqu.L("AVG(weekly_pay) FILTER (WHERE weekly_pay BETWEEN 1200 AND 15000)").As("avg_weekly_pay"),
			goqu.L("AVG(hourly_pay) FILTER (WHERE hourly_pay BETWEEN 10 AND 250)").As("avg_hourly_pay"),
			goqu.COUNT(goqu.Star()).As("sample_size"),
		).
		Where(scopeConditions(filter)...).
		GroupBy("specialty").
		Having(goqu.L("COUNT(*) >= ?", filter.MinSampleSize)).
		Order(goqu.L("COUNT(*)").Desc()).
		Limit(1).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build scope statistics query", err)
	}

	stats := &entities.RateStatistics{
		Metric:      string(filter.Metric),
		MetricLabel: filter.Metric.Label(),
	}
	var avgBill, avgWeekly, avgHourly sql.NullFloat64

	err = a.client.DB().QueryRowContext(ctx, query, args...).Scan(
		&stats.Specialty,
		&stats.AvgRate,
		&stats.MinRate,
		&stats.MaxRate,
		&stats.CompetitiveRate,
		&avgBill,
		&avgWeekly,
		&avgHourly,
		&stats.SampleSize,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, apperrors.NewUnavailableError("failed to query scope statistics", err)
	}

	if avgBill.Valid {
		stats.AvgBillRate = &avgBill.Float64
	}
	if avgWeekly.Valid {
		stats.AvgWeeklyPay = &avgWeekly.Float64
	}
	if avgHourly.Valid {
		stats.AvgHourlyPay = &avgHourly.Float64
	}

	return stats, nil
}

// HighestRates reports the top of a scope's distribution
func (a *AssignmentAdapter) HighestRates(ctx context.Context, filter repositories.ScopeFilter) (*entities.HighRateStatistics, error) {
	col := filter.Metric.Column()

	query, args, err := a.db.From("assignments").
		Select(
			goqu.C("specialty"),
			goqu.L(fmt.Sprintf("PERCENTILE_CONT(0.75) WITHIN GROUP (ORDER BY %s)", col)).As("p75"),
			goqu.L(fmt.Sprintf("PERCENTILE_CONT(0.90) WITHIN GROUP (ORDER BY %s)", col)).As("p90"),
			goqu.L(fmt.Sprintf("MAX(%s)", col)).As("max_rate"),
			goqu.COUNT(goqu.Star()).As("sample_size"),
		).
		Where(scopeConditions(filter)...).
		GroupBy("specialty").
		Having(goqu.L("COUNT(*) >= ?", filter.MinSampleSize)).
		Order(goqu.L("COUNT(*)").Desc()).
		Limit(1).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build highest rates query", err)
	}

	stats := &entities.HighRateStatistics{Metric: string(filter.Metric)}
	err = a.client.DB().QueryRowContext(ctx, query, args...).Scan(
		&stats.Specialty,
		&stats.P75,
		&stats.P90,
		&stats.MaxRate,
		&stats.SampleSize,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, apperrors.NewUnavailableError("failed to query highest rates", err)
	}

	return stats, nil
}

// ClientRankings ranks distinct facilities by average active-metric value.
// Facilities without a name are excluded; only current and future postings
// count.
func (a *AssignmentAdapter) ClientRankings(ctx context.Context, filter repositories.RankingFilter) ([]*entities.ClientRate, error) {
	col := filter.Metric.Column()

	conds := metricConditions(filter.Metric)
	conds = append(conds,
		goqu.L("specialty ~* ?", filter.SpecialtyPattern),
		goqu.C("client_name").IsNotNull(),
		goqu.C("client_name").Neq(""),
		goqu.L("start_date >= CURRENT_DATE"),
	)
	if profession, ok := rates.ProfessionRestriction(filter.Profession); ok {
		conds = append(conds, goqu.C("profession").Eq(profession))
	}
	if filter.City != "" {
		conds = append(conds, goqu.L("LOWER(city) = LOWER(?)", filter.City))
	}
	if filter.State != "" {
		conds = append(conds, goqu.L("UPPER(state) = UPPER(?)", filter.State))
	}

	ds := a.db.From("assignments").
		Select(
			goqu.C("client_name"),
			goqu.C("city"),
			goqu.C("state"),
			goqu.C("specialty"),
			goqu.L(fmt.Sprintf("AVG(%s)", col)).As("avg_rate"),
			goqu.COUNT(goqu.Star()).As("assignment_count"),
			goqu.L("MAX(start_date)").As("latest_start"),
		).
		Where(conds...).
		GroupBy("client_name", "city", "state", "specialty")

	switch filter.Mode {
	case repositories.RankSimilar:
		low := filter.TargetRate * (1 - filter.TolerancePct/100)
		high := filter.TargetRate * (1 + filter.TolerancePct/100)
		ds = ds.
			Having(goqu.L(fmt.Sprintf("AVG(%s) BETWEEN ? AND ?", col), low, high)).
			Order(goqu.L("COUNT(*)").Desc(), goqu.L(fmt.Sprintf("AVG(%s)", col)).Desc())
	case repositories.RankLowest:
		ds = ds.Order(goqu.L(fmt.Sprintf("AVG(%s)", col)).Asc())
	default:
		ds = ds.Order(goqu.L(fmt.Sprintf("AVG(%s)", col)).Desc())
	}

	query, args, err := ds.Limit(uint(filter.Limit)).ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build client ranking query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewUnavailableError("failed to query client rankings", err)
	}
	defer rows.Close()

	var rankings []*entities.ClientRate
	for rows.Next() {
		rate := &entities.ClientRate{}
		if err := rows.Scan(
			&rate.ClientName,
			&rate.City,
			&rate.State,
			&rate.Specialty,
			&rate.AvgRate,
			&rate.AssignmentCount,
			&rate.LatestStart,
		); err != nil {
			return nil, apperrors.NewInternalError("failed to scan client ranking row", err)
		}
		rate.AvgRate = rates.Round2(rate.AvgRate)
		rankings = append(rankings, rate)
	}

	return rankings, rows.Err()
}

// ComparableJobs lists individual postings inside a rate band, soonest
// start first
func (a *AssignmentAdapter) ComparableJobs(ctx context.Context, filter repositories.JobFilter) ([]*entities.JobPosting, error) {
	col := filter.Metric.Column()

	conds := []goqu.Expression{
		goqu.L("specialty ~* ?", filter.SpecialtyPattern),
		goqu.C(col).IsNotNull(),
		goqu.C(col).Between(goqu.Range(filter.MinRate, filter.MaxRate)),
		goqu.C("client_name").IsNotNull(),
		goqu.L("start_date >= CURRENT_DATE"),
	}
	if profession, ok := rates.ProfessionRestriction(filter.Profession); ok {
		conds = append(conds, goqu.C("profession").Eq(profession))
	}
	if filter.City != "" {
		conds = append(conds, goqu.L("LOWER(city) = LOWER(?)", filter.City))
	}
	if filter.State != "" {
		conds = append(conds, goqu.L("UPPER(state) = UPPER(?)", filter.State))
	}

	query, args, err := a.db.From("assignments").
		Select(
			goqu.C("client_name"),
			goqu.C("specialty"),
			goqu.C("profession"),
			goqu.C("city"),
			goqu.C("state"),
			goqu.C(col).As("rate"),
			goqu.C("start_date"),
		).
		Where(conds...).
		Order(goqu.C("start_date").Asc()).
		Limit(uint(filter.Limit)).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build comparable jobs query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewUnavailableError("failed to query comparable jobs", err)
	}
	defer rows.Close()

	var jobs []*entities.JobPosting
	for rows.Next() {
		job := &entities.JobPosting{}
		var profession sql.NullString
		if err := rows.Scan(
			&job.ClientName,
			&job.Specialty,
			&profession,
			&job.City,
			&job.State,
			&job.Rate,
			&job.StartDate,
		); err != nil {
			return nil, apperrors.NewInternalError("failed to scan comparable job row", err)
		}
		job.Profession = profession.String
		jobs = append(jobs, job)
	}

	return jobs, rows.Err()
}

// JobsWithinRadius lists postings within a great-circle radius of a point.
// The distance is computed in SQL so the store can sort and cap; semantics
// are boundary inclusive, Earth radius 3959 statute miles.
func (a *AssignmentAdapter) JobsWithinRadius(ctx context.Context, filter repositories.RadiusFilter) ([]*entities.NearbyJob, error) {
	col := filter.Metric.Column()
	min, max := filter.Metric.Bounds()

	conditions := fmt.Sprintf(`
			latitude IS NOT NULL AND longitude IS NOT NULL
			AND client_name IS NOT NULL
			AND %s IS NOT NULL AND %s BETWEEN $4 AND $5`, col, col)
	args := []interface{}{filter.Latitude, filter.Longitude, filter.RadiusMiles, min, max}

	if filter.SpecialtyPattern != "" {
		args = append(args, filter.SpecialtyPattern)
		conditions += fmt.Sprintf(" AND specialty ~* $%d", len(args))
	}
	if profession, ok := rates.ProfessionRestriction(filter.Profession); ok {
		args = append(args, profession)
		conditions += fmt.Sprintf(" AND profession = $%d", len(args))
	}
	if filter.MinRate > 0 {
		args = append(args, filter.MinRate)
		conditions += fmt.Sprintf(" AND %s >= $%d", col, len(args))
	}
	args = append(args, filter.Limit)

	query := fmt.Sprintf(`
		SELECT client_name, specialty, profession, city, state, rate, start_date,
		       latitude, longitude, distance_miles
		FROM (
			SELECT client_name, specialty, profession, city, state,
			       %s AS rate, start_date, latitude, longitude,
			       (3959 * acos(LEAST(1.0,
			           cos(radians($1)) * cos(radians(latitude)) *
			           cos(radians(longitude) - radians($2)) +
			           sin(radians($1)) * sin(radians(latitude))
			       ))) AS distance_miles
			FROM assignments
			WHERE %s
		) nearby
		WHERE distance_miles <= $3
		ORDER BY distance_miles ASC
		LIMIT $%d`, col, conditions, len(args))

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewUnavailableError("failed to query jobs within radius", err)
	}
	defer rows.Close()

	var jobs []*entities.NearbyJob
	for rows.Next() {
		job := &entities.NearbyJob{}
		var profession sql.NullString
		if err := rows.Scan(
			&job.ClientName,
			&job.Specialty,
			&profession,
			&job.City,
			&job.State,
			&job.Rate,
			&job.StartDate,
			&job.Latitude,
			&job.Longitude,
			&job.DistanceMiles,
		); err != nil {
			return nil, apperrors.NewInternalError("failed to scan nearby job row", err)
		}
		job.Profession = profession.String
		job.DistanceMiles = rates.Round2(job.DistanceMiles)
		jobs = append(jobs, job)
	}

	return jobs, rows.Err()
}

// StateTrends computes recent vs prior window averages per state. States
// missing from either window are excluded by the inner join; direction and
// noise-floor filtering happen in the caller.
func (a *AssignmentAdapter) StateTrends(ctx context.Context, filter repositories.TrendFilter) ([]*entities.StateTrend, error) {
	col := filter.Metric.Column()
	min, max := filter.Metric.Bounds()

	professionCond := ""
	args := []interface{}{filter.SpecialtyPattern, min, max, filter.MinWindowSamples}
	if profession, ok := rates.ProfessionRestriction(filter.Profession); ok {
		args = append(args, profession)
		professionCond = fmt.Sprintf(" AND profession = $%d", len(args))
	}

	query := fmt.Sprintf(`
		WITH recent AS (
			SELECT state, AVG(%[1]s) AS avg_rate, COUNT(*) AS cnt
			FROM assignments
			WHERE specialty ~* $1
			  AND %[1]s IS NOT NULL AND %[1]s BETWEEN $2 AND $3
			  AND state IS NOT NULL AND state != ''
			  AND start_date >= CURRENT_DATE - INTERVAL '%[2]d days'%[4]s
			GROUP BY state
			HAVING COUNT(*) >= $4
		),
		prior AS (
			SELECT state, AVG(%[1]s) AS avg_rate, COUNT(*) AS cnt
			FROM assignments
			WHERE specialty ~* $1
			  AND %[1]s IS NOT NULL AND %[1]s BETWEEN $2 AND $3
			  AND state IS NOT NULL AND state != ''
			  AND start_date >= CURRENT_DATE - INTERVAL '%[3]d days'
			  AND start_date < CURRENT_DATE - INTERVAL '%[2]d days'%[4]s
			GROUP BY state
			HAVING COUNT(*) >= $4
		)
		SELECT r.state, r.avg_rate, p.avg_rate,
		       (r.avg_rate - p.avg_rate) / p.avg_rate * 100 AS change_pct,
		       r.cnt, p.cnt
		FROM recent r
		INNER JOIN prior p ON r.state = p.state
		WHERE p.avg_rate > 0`,
		col, filter.RecentDays, filter.PriorDays, professionCond)

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewUnavailableError("failed to query state trends", err)
	}
	defer rows.Close()

	var trends []*entities.StateTrend
	for rows.Next() {
		trend := &entities.StateTrend{}
		if err := rows.Scan(
			&trend.State,
			&trend.RecentAvg,
			&trend.PriorAvg,
			&trend.ChangePct,
			&trend.RecentCount,
			&trend.PriorCount,
		); err != nil {
			return nil, apperrors.NewInternalError("failed to scan state trend row", err)
		}
		trends = append(trends, trend)
	}

	return trends, rows.Err()
}

// VendorActivity lists vendors active at a facility over the activity
// window. The facility name matches partially so callers can pass the name
// as users type it.
func (a *AssignmentAdapter) VendorActivity(ctx context.Context, filter repositories.VendorFilter) ([]*entities.VendorActivity, error) {
	conditions := `vendor_name IS NOT NULL AND vendor_name != ''
			  AND client_name ILIKE '%' || $1 || '%'`
	args := []interface{}{filter.FacilityName}

	conditions += fmt.Sprintf(" AND start_date >= CURRENT_DATE - INTERVAL '%d months'", filter.WindowMonths)

	if filter.City != "" {
		args = append(args, filter.City)
		conditions += fmt.Sprintf(" AND LOWER(city) = LOWER($%d)", len(args))
	}
	if filter.State != "" {
		args = append(args, filter.State)
		conditions += fmt.Sprintf(" AND UPPER(state) = UPPER($%d)", len(args))
	}
	if filter.SpecialtyPattern != "" {
		args = append(args, filter.SpecialtyPattern)
		conditions += fmt.Sprintf(" AND specialty ~* $%d", len(args))
	}
	args = append(args, filter.Limit)

	query := fmt.Sprintf(`
		SELECT vendor_name, client_name, city, state,
		       ARRAY_AGG(DISTINCT specialty) AS specialties,
		       COUNT(*) AS assignment_count,
		       AVG(bill_rate) FILTER (WHERE bill_rate BETWEEN 30 AND 800) AS avg_bill_rate,
		       MAX(start_date) AS latest_start
		FROM assignments
		WHERE %s
		GROUP BY vendor_name, client_name, city, state
		ORDER BY COUNT(*) DESC, MAX(start_date) DESC
		LIMIT $%d`, conditions, len(args))

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewUnavailableError("failed to query vendor activity", err)
	}
	defer rows.Close()

	var vendors []*entities.VendorActivity
	for rows.Next() {
		vendor := &entities.VendorActivity{}
		var avgBill sql.NullFloat64
		if err := rows.Scan(
			&vendor.VendorName,
			&vendor.ClientName,
			&vendor.City,
			&vendor.State,
			pq.Array(&vendor.Specialties),
			&vendor.AssignmentCount,
			&avgBill,
			&vendor.LatestStart,
		); err != nil {
			return nil, apperrors.NewInternalError("failed to scan vendor activity row", err)
		}
		vendor.AvgBillRate = rates.Round2(avgBill.Float64)
		vendors = append(vendors, vendor)
	}

	return vendors, rows.Err()
}

// VendorSummary aggregates one vendor across facilities over the last six
// months; nil when the vendor has no recent activity
func (a *AssignmentAdapter) VendorSummary(ctx context.Context, vendorName string) (*entities.VendorSummary, error) {
	query := `
		SELECT vendor_name,
		       COUNT(DISTINCT client_name) AS facility_count,
		       COUNT(*) AS assignment_count,
		       AVG(bill_rate) FILTER (WHERE bill_rate BETWEEN 30 AND 800) AS avg_bill_rate,
		       ARRAY_AGG(DISTINCT state) AS states,
		       (SELECT ARRAY_AGG(s.specialty)
		        FROM (SELECT specialty
		              FROM assignments
		              WHERE LOWER(vendor_name) = LOWER($1)
		              GROUP BY specialty
		              ORDER BY COUNT(*) DESC
		              LIMIT 5) s) AS top_specialties
		FROM assignments
		WHERE LOWER(vendor_name) = LOWER($1)
		  AND start_date >= CURRENT_DATE - INTERVAL '6 months'
		GROUP BY vendor_name`

	summary := &entities.VendorSummary{}
	var avgBill sql.NullFloat64
	err := a.client.DB().QueryRowContext(ctx, query, vendorName).Scan(
		&summary.VendorName,
		&summary.FacilityCount,
		&summary.AssignmentCount,
		&avgBill,
		pq.Array(&summary.States),
		pq.Array(&summary.TopSpecialties),
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, apperrors.NewUnavailableError("failed to query vendor summary", err)
	}

	summary.AvgBillRate = rates.Round2(avgBill.Float64)
	return summary, nil
}

// LeadOpportunities lists the highest-rate upcoming postings
func (a *AssignmentAdapter) LeadOpportunities(ctx context.Context, filter repositories.LeadFilter) ([]*entities.JobPosting, error) {
	col := filter.Metric.Column()

	conds := metricConditions(filter.Metric)
	conds = append(conds,
		goqu.C("client_name").IsNotNull(),
		goqu.C("client_name").Neq(""),
		goqu.L(fmt.Sprintf("start_date >= CURRENT_DATE - INTERVAL '%d months'", filter.LookbackMonths)),
	)
	if filter.SpecialtyPattern != "" {
		conds = append(conds, goqu.L("specialty ~* ?", filter.SpecialtyPattern))
	}
	if filter.State != "" {
		conds = append(conds, goqu.L("UPPER(state) = UPPER(?)", filter.State))
	}

	query, args, err := a.db.From("assignments").
		Select(
			goqu.C("client_name"),
			goqu.C("specialty"),
			goqu.C("profession"),
			goqu.C("city"),
			goqu.C("state"),
			goqu.C(col).As("rate"),
			goqu.C("start_date"),
		).
		Where(conds...).
		Order(goqu.C(col).Desc()).
		Limit(uint(filter.Limit)).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build lead opportunities query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewUnavailableError("failed to query lead opportunities", err)
	}
	defer rows.Close()

	var leads []*entities.JobPosting
	for rows.Next() {
		lead := &entities.JobPosting{}
		var profession sql.NullString
		if err := rows.Scan(
			&lead.ClientName,
			&lead.Specialty,
			&profession,
			&lead.City,
			&lead.State,
			&lead.Rate,
			&lead.StartDate,
		); err != nil {
			return nil, apperrors.NewInternalError("failed to scan lead opportunity row", err)
		}
		lead.Profession = profession.String
		leads = append(leads, lead)
	}

	return leads, rows.Err()
}
