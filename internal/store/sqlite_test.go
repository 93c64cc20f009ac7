package store

import (
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theirongolddev/fundboard/internal/model"
)

func TestWriteReadDataset(t *testing.T) {
	db, err := Open(filepath.Join(t.TempDir(), "out", "funding.db"))
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	_, err = db.Meta()
	assert.ErrorIs(t, err, sql.ErrNoRows)

	ds := model.NewDataset([]model.Record{
		{Date: time.Date(2017, 8, 1, 0, 0, 0, 0, time.UTC), StartupName: "Zomato", IndustryVertical: "Consumer Internet", CityLocation: "Bengaluru", AmountUSD: model.Float(1e6)},
		{StartupName: "Swiggy", InvestorsName: "Accel"},
	})

	require.NoError(t, db.WriteDataset(ds, Meta{SourcePath: "startup_funding.csv", Criteria: "all"}))

	n, err := db.RecordCount()
	require.NoError(t, err)
	assert.Equal(t, ds.Len(), n)

	got := readDataset(t, db)
	assert.True(t, got.Equal(ds))

	meta, err := db.Meta()
	require.NoError(t, err)
	assert.Equal(t, 2, meta.RecordCount)
	assert.Equal(t, "all", meta.Criteria)
	assert.False(t, meta.ExportedAt.IsZero())
}

func TestWriteDataset_Replaces(t *testing.T) {
	db, err := Open(filepath.Join(t.TempDir(), "funding.db"))
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	first := model.NewDataset([]model.Record{{StartupName: "A"}, {StartupName: "B"}})
	second := model.NewDataset([]model.Record{{StartupName: "C"}})

	require.NoError(t, db.WriteDataset(first, Meta{SourcePath: "x"}))
	require.NoError(t, db.WriteDataset(second, Meta{SourcePath: "x"}))

	n, err := db.RecordCount()
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

// readDataset reads the stored records back in insertion order.
func readDataset(t *testing.T, d *DB) model.Dataset {
	t.Helper()
	rows, err := d.db.Query(`SELECT date, startup_name, industry_vertical, sub_vertical,
		city_location, investors_name, investment_type, amount_usd
		FROM startups ORDER BY row_num`)
	require.NoError(t, err)
	defer func() { _ = rows.Close() }()

	var recs []model.Record
	for rows.Next() {
		var r model.Record
		var date, name, ind, sub, city, inv, itype sql.NullString
		var amount sql.NullFloat64
		require.NoError(t, rows.Scan(&date, &name, &ind, &sub, &city, &inv, &itype, &amount))
		if date.Valid {
			r.Date, err = time.Parse(dateFormat, date.String)
			require.NoError(t, err)
		}
		r.StartupName = name.String
		r.IndustryVertical = ind.String
		r.SubVertical = sub.String
		r.CityLocation = city.String
		r.InvestorsName = inv.String
		r.InvestmentType = itype.String
		if amount.Valid {
			v := amount.Float64
			r.AmountUSD = &v
		}
		recs = append(recs, r)
	}
	require.NoError(t, rows.Err())
	return model.NewDataset(recs)
}
