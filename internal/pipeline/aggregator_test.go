package pipeline

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theirongolddev/fundboard/internal/model"
)

func TestSummarize(t *testing.T) {
	ds := loadSample(t)
	s := Summarize(ds)

	assert.Equal(t, 6, s.Records)
	assert.Equal(t, 6, s.Startups)
	assert.Equal(t, 3, s.Industries)
	assert.Equal(t, 3, s.Cities)
	assert.Equal(t, 4, s.Investors)
	assert.Equal(t, 5, s.DatedRecords)
	assert.Equal(t, 5, s.FundedRecords)
	assert.Equal(t, 1411500000.0, s.TotalUSD)
	assert.Equal(t, 282300000.0, s.MeanUSD)
	assert.Equal(t, 3000000.0, s.MedianUSD)
	assert.Equal(t, 1400000000.0, s.MaxUSD)
	assert.Equal(t, time.Date(2016, 2, 2, 0, 0, 0, 0, time.UTC), s.FirstDate)
	assert.Equal(t, time.Date(2018, 3, 5, 0, 0, 0, 0, time.UTC), s.LastDate)
}

func TestSummarize_Empty(t *testing.T) {
	s := Summarize(model.Dataset{})
	assert.Zero(t, s.Records)
	assert.Zero(t, s.MeanUSD)
	assert.True(t, s.FirstDate.IsZero())
}

func TestAggregateIndustries(t *testing.T) {
	got := AggregateIndustries(loadSample(t))
	require.Len(t, got, 3)

	assert.Equal(t, "Finance", got[0].Industry)
	assert.Equal(t, 1400000000.0, got[0].AmountUSD)
	assert.Equal(t, "Consumer Internet", got[1].Industry)
	assert.Equal(t, 3, got[1].Deals)
	assert.Equal(t, 6000000.0, got[1].AmountUSD)
	assert.Equal(t, "Transportation", got[2].Industry)
}

func TestAggregateCities_Limit(t *testing.T) {
	ds := loadSample(t)

	all := AggregateCities(ds, 0)
	require.Len(t, all, 3)
	assert.Equal(t, "Noida", all[0].City)
	assert.Equal(t, "Bengaluru", all[1].City)
	assert.Equal(t, 3, all[1].Deals)
	assert.Equal(t, 3500000.0, all[1].AmountUSD)

	top := AggregateCities(ds, 2)
	assert.Len(t, top, 2)
}

func TestAggregateYears(t *testing.T) {
	got := AggregateYears(loadSample(t))
	assert.Equal(t, []model.YearStats{
		{Year: 2016, Startups: 1, AmountUSD: 3000000},
		{Year: 2017, Startups: 2, AmountUSD: 1401000000},
		{Year: 2018, Startups: 2, AmountUSD: 7500000},
	}, got)
}

func TestAggregateInvestors_TiesByName(t *testing.T) {
	got := AggregateInvestors(loadSample(t), 3)
	assert.Equal(t, []model.InvestorStats{
		{Investor: "Accel", Investments: 2},
		{Investor: "SoftBank", Investments: 2},
		{Investor: "Info Edge", Investments: 1},
	}, got)
}

func TestAggregateDaily(t *testing.T) {
	ds := model.NewDataset([]model.Record{
		{Date: time.Date(2018, 1, 2, 0, 0, 0, 0, time.UTC), AmountUSD: model.Float(10)},
		{Date: time.Date(2018, 1, 1, 0, 0, 0, 0, time.UTC), AmountUSD: model.Float(5)},
		{Date: time.Date(2018, 1, 2, 0, 0, 0, 0, time.UTC), AmountUSD: model.Float(7)},
		{Date: time.Date(2018, 1, 3, 0, 0, 0, 0, time.UTC)},
		{AmountUSD: model.Float(100)},
	})

	got := AggregateDaily(ds)
	require.Len(t, got, 3)
	assert.Equal(t, 5.0, got[0].AmountUSD)
	assert.Equal(t, 17.0, got[1].AmountUSD)
	assert.Equal(t, 0.0, got[2].AmountUSD)
	assert.True(t, got[0].Date.Before(got[1].Date))
}
