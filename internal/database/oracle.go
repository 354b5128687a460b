package database

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/shopspring/decimal"
	go_ora "github.com/sijms/go-ora/v2"
	log "github.com/sirupsen/logrus"

	"ratehub/internal/pricing"
	"ratehub/internal/schema"
)

type OracleRepository interface {
	QueryContractRates(ctx context.Context, queryParams schema.RateQueryParams) ([]*schema.MainlineRate, error)
}

// Settings represents application configuration
type OracleSettings struct {
	DBUser      *string
	DBPassword  *string
	Host        *string
	Port        *int
	ServiceName *string
}

// OracleDBConnectionPool implements the OracleRepository interface
type OracleDBConnectionPool struct {
	db          *sql.DB
	stmt        *sql.Stmt
	concurrency int
	maxRetries  int
}

// NewOracleDBConnectionPool creates a new instance of OracleDBConnectionPool
func NewOracleDBConnectionPool(settings OracleSettings, concurrency, maxRetries int) (*OracleDBConnectionPool, error) {
	//instead of fetching rows one by one, we fetch multiple rows in one network operation
	urlOptions := map[string]string{
		"PREFETCH_ROWS": "500",
	}
	connStr := go_ora.BuildUrl(*settings.Host, *settings.Port, *settings.ServiceName, *settings.DBUser, *settings.DBPassword, urlOptions)
	var db *sql.DB
	var err error

	// Retry mechanism for opening the database connection
	for retry := 0; retry <= maxRetries; retry++ {
		db, err = sql.Open("oracle", connStr)
		if err == nil {
			break
		}
		log.Errorf("attempt %d: error opening database connection: %v", retry+1, err)
		if retry < maxRetries {
			time.Sleep(time.Second * time.Duration(retry+1)) // Exponential backoff
		}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection after %d retries: %w", maxRetries, err)
	}

	// Configure connection pool
	db.SetMaxOpenConns(concurrency)
	db.SetMaxIdleConns(100)
	db.SetConnMaxIdleTime(10 * time.Minute)
	db.SetConnMaxLifetime(20 * time.Minute)

	pool := &OracleDBConnectionPool{
		db:          db,
		concurrency: concurrency,
		maxRetries:  maxRetries,
	}
	// Read SQL query once and prepare it
	queryString, err := pool.getSQLquery()
	if err != nil {
		db.Close()
		return nil, err
	}
	//stmt will be bound to a single underlying connection forever. https://pkg.go.dev/database/sql#Stmt
	stmt, err := db.PrepareContext(context.Background(), string(queryString))
	if err != nil {
		db.Close()
		return nil, err
	}
	pool.stmt = stmt

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	for retry := 0; retry <= maxRetries; retry++ {
		err = pool.db.PingContext(ctx)
		if err == nil {
			log.Info("Connected To Oracle DB connection pool")
			break
		}
		log.Errorf("attempt %d: failed to connect to Oracle DB: %v", retry+1, err)
		if retry < maxRetries {
			time.Sleep(time.Second * time.Duration(retry+2))
		}
	}
	if err != nil {
		pool.db.Close()
		return nil, fmt.Errorf("failed to connect to Oracle DB after %d retries: %w", maxRetries, err)
	}
	return pool, nil
}

func (p *OracleDBConnectionPool) getSQLquery() ([]byte, error) {
	currentDir, err := os.Getwd()
	if err != nil {
		return nil, err
	}
	sqlFilePath := filepath.Join(currentDir+"/internal/handlers", "rate_query.sql")
	queryString, err := os.ReadFile(sqlFilePath)
	if err != nil {
		return nil, err
	}
	return queryString, nil
}

// QueryContractRates returns the contracted ocean freight rates matching the
// search criteria, cheapest 20GP first.
func (p *OracleDBConnectionPool) QueryContractRates(ctx context.Context, queryParams schema.RateQueryParams) ([]*schema.MainlineRate, error) {
	log.Info("Started requesting contracted rates from database")
	startDate := queryParams.StartDate
	if startDate == "" {
		startDate = time.Now().Format("2006-01-02")
	}
	rows, err := p.stmt.QueryContext(ctx,
		sql.Named("pol", queryParams.DeparturePort),
		sql.Named("pod", queryParams.DischargePort),
		sql.Named("carrier", queryParams.Carrier),
		sql.Named("startDate", startDate))
	if err != nil {
		return nil, err
	}

	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			log.Errorf("error closing rows: %v", closeErr)
		}
	}()
	var contractRates []*schema.MainlineRate
	for rows.Next() {
		var row schema.ContractRateRow
		err := rows.Scan(
			&row.CertNo,
			&row.DeparturePort,
			&row.DischargePort,
			&row.Carrier,
			&row.TransitPort,
			&row.TransitType,
			&row.Currency,
			&row.Price20GP,
			&row.Price40GP,
			&row.Price40HC,
			&row.Price45HC,
			&row.Price20NOR,
			&row.Price40NOR,
			&row.ValidFrom,
			&row.ValidTo,
			&row.Etd,
			&row.Eta,
			&row.TransitDays,
			&row.FreeBoxDays,
			&row.FreeStorageDays,
		)
		if err != nil {
			log.Errorf("row scan error: %v", err)
			continue
		}
		contractRates = append(contractRates, row.ToMainlineRate())
	}
	sortByBoxPrice(contractRates)
	return contractRates, nil
}

// sortByBoxPrice orders contracts cheapest 20GP first, comparing the parsed
// decimal values. Contracts without a parsable 20GP price go last.
func sortByBoxPrice(rates []*schema.MainlineRate) {
	sort.SliceStable(rates, func(i, j int) bool {
		left, leftOk := parseBoxPrice(rates[i])
		right, rightOk := parseBoxPrice(rates[j])
		if leftOk != rightOk {
			return leftOk
		}
		if !leftOk {
			return false
		}
		return left.LessThan(right)
	})
}

func parseBoxPrice(rate *schema.MainlineRate) (decimal.Decimal, bool) {
	raw, ok := rate.Prices.UnitPrice(schema.C20GP)
	if !ok {
		return decimal.Zero, false
	}
	return pricing.ParsePrice(raw)
}
