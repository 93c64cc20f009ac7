package source

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

const testHeader = "Sr No,Date dd/mm/yyyy,Startup Name,Industry Vertical,SubVertical,City  Location,Investors Name,InvestmentnType,Amount in USD,Remarks"

// writeCSV creates a temp funding file and returns its path.
func writeCSV(t *testing.T, lines ...string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "startup_funding.csv")
	if err := os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestParseFile_PositionalMapping(t *testing.T) {
	path := writeCSV(t,
		testHeader,
		`1,09/01/2020,BYJU’S,E-Tech,E-learning,Bengaluru,Tiger Global Management,Private Equity Round,"200,000,000",`,
	)

	res := ParseFile(path)
	if res.Err != nil {
		t.Fatalf("unexpected error: %v", res.Err)
	}
	if len(res.Records) != 1 {
		t.Fatalf("len(Records) = %d, want 1", len(res.Records))
	}

	r := res.Records[0]
	if want := time.Date(2020, 1, 9, 0, 0, 0, 0, time.UTC); !r.Date.Equal(want) {
		t.Errorf("Date = %v, want %v", r.Date, want)
	}
	if r.StartupName != "BYJU’S" {
		t.Errorf("StartupName = %q", r.StartupName)
	}
	if r.IndustryVertical != "E-Tech" || r.SubVertical != "E-learning" {
		t.Errorf("verticals = %q/%q", r.IndustryVertical, r.SubVertical)
	}
	if r.CityLocation != "Bengaluru" {
		t.Errorf("CityLocation = %q", r.CityLocation)
	}
	if r.InvestorsName != "Tiger Global Management" {
		t.Errorf("InvestorsName = %q", r.InvestorsName)
	}
	if r.InvestmentType != "Private Equity Round" {
		t.Errorf("InvestmentType = %q", r.InvestmentType)
	}
	if r.AmountUSD == nil || *r.AmountUSD != 200000000 {
		t.Errorf("AmountUSD = %v, want 200000000", r.AmountUSD)
	}
}

func TestParseFile_HeaderNamesIgnored(t *testing.T) {
	path := writeCSV(t,
		"a,b,c,d,e,f,g,h,i,j",
		"1,01/02/2019,Acme,Fintech,Payments,Mumbai,Seed Fund,Seed,500,note",
	)

	res := ParseFile(path)
	if res.Err != nil {
		t.Fatalf("unexpected error: %v", res.Err)
	}
	if got := res.Records[0].CityLocation; got != "Mumbai" {
		t.Errorf("CityLocation = %q, want Mumbai", got)
	}
}

func TestParseFile_BadFieldsBecomeNull(t *testing.T) {
	path := writeCSV(t,
		testHeader,
		"1,not-a-date,Acme,Fintech,,Mumbai,X,Seed,undisclosed,",
		"2,31/02/2019,Beta,Fintech,,Mumbai,X,Seed,1.5e3,",
		"3,,Gamma,,,,,,,",
	)

	res := ParseFile(path)
	if res.Err != nil {
		t.Fatalf("unexpected error: %v", res.Err)
	}
	if len(res.Records) != 3 {
		t.Fatalf("len(Records) = %d, want 3", len(res.Records))
	}
	if res.BadDates != 2 {
		t.Errorf("BadDates = %d, want 2", res.BadDates)
	}
	if res.BadAmounts != 1 {
		t.Errorf("BadAmounts = %d, want 1", res.BadAmounts)
	}

	if res.Records[0].HasDate() || res.Records[0].AmountUSD != nil {
		t.Errorf("record 0 should have null date and amount: %+v", res.Records[0])
	}
	if res.Records[1].HasDate() {
		t.Errorf("31/02 should not parse")
	}
	if res.Records[1].AmountUSD == nil || *res.Records[1].AmountUSD != 1500 {
		t.Errorf("record 1 amount = %v, want 1500", res.Records[1].AmountUSD)
	}

	g := res.Records[2]
	if g.IndustryVertical != "" || g.CityLocation != "" || g.AmountUSD != nil || g.HasDate() {
		t.Errorf("empty cells should be null: %+v", g)
	}
}

func TestParseFile_NAMarkersAreNull(t *testing.T) {
	path := writeCSV(t,
		testHeader,
		"1,NA,Ola,NA,,N/A,None,null,nan,",
		"2,#N/A,Uber,<NA>,,NULL,SoftBank,Seed,NaN,",
		"3,01/01/0001,Lyft,Transport,,n/a,X,Seed,N/A,",
	)

	res := ParseFile(path)
	if res.Err != nil {
		t.Fatalf("unexpected error: %v", res.Err)
	}
	if res.BadAmounts != 0 {
		t.Errorf("BadAmounts = %d, want 0 (NA markers are missing, not bad)", res.BadAmounts)
	}
	if res.BadDates != 1 {
		t.Errorf("BadDates = %d, want 1 (only 01/01/0001)", res.BadDates)
	}

	for i, r := range res.Records {
		if r.CityLocation != "" || r.AmountUSD != nil || r.HasDate() {
			t.Errorf("record %d should have null city, amount and date: %+v", i, r)
		}
	}
	if got := res.Records[0].IndustryVertical; got != "" {
		t.Errorf("IndustryVertical = %q, want null", got)
	}
	if got := res.Records[0].InvestorsName; got != "" {
		t.Errorf("InvestorsName = %q, want null", got)
	}
	if got := res.Records[1].IndustryVertical; got != "" {
		t.Errorf("IndustryVertical = %q, want null", got)
	}
	if got := res.Records[2].IndustryVertical; got != "Transport" {
		t.Errorf("IndustryVertical = %q, want Transport", got)
	}
}

func TestParseFile_TrimsTextCells(t *testing.T) {
	path := writeCSV(t,
		testHeader,
		"1,05/06/2018,Acme,Fintech,, Bangalore,X,Seed,100,",
		"2,05/06/2018,Beta,Fintech,,Bangalore ,X,Seed,100,",
	)

	res := ParseFile(path)
	if res.Err != nil {
		t.Fatalf("unexpected error: %v", res.Err)
	}
	for i, r := range res.Records {
		if r.CityLocation != "Bangalore" {
			t.Errorf("record %d CityLocation = %q, want Bangalore", i, r.CityLocation)
		}
	}
}

func TestParseFile_ShortRowPadded(t *testing.T) {
	path := writeCSV(t,
		testHeader,
		"1,05/06/2018,Acme,Fintech",
	)

	res := ParseFile(path)
	if res.Err != nil {
		t.Fatalf("unexpected error: %v", res.Err)
	}
	r := res.Records[0]
	if r.IndustryVertical != "Fintech" || r.CityLocation != "" || r.AmountUSD != nil {
		t.Errorf("short row = %+v", r)
	}
}

func TestParseFile_Errors(t *testing.T) {
	tests := []struct {
		name      string
		lines     []string
		malformed bool
	}{
		{"empty file", nil, true},
		{"narrow header", []string{"a,b,c"}, true},
		{"wide row", []string{testHeader, "1,2,3,4,5,6,7,8,9,10,11"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "f.csv")
			body := strings.Join(tt.lines, "\n")
			if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
				t.Fatal(err)
			}
			res := ParseFile(path)
			if res.Err == nil {
				t.Fatal("expected error")
			}
			if errors.Is(res.Err, ErrMalformed) != tt.malformed {
				t.Errorf("errors.Is(ErrMalformed) = %v, err = %v", !tt.malformed, res.Err)
			}
			if res.Records != nil {
				t.Errorf("records should be nil on error")
			}
		})
	}
}

func TestParseFile_Missing(t *testing.T) {
	res := ParseFile(filepath.Join(t.TempDir(), "nope.csv"))
	if !errors.Is(res.Err, os.ErrNotExist) {
		t.Errorf("err = %v, want ErrNotExist", res.Err)
	}
}

func TestParseFile_NormalisesUnicode(t *testing.T) {
	// "é" written as e + combining acute.
	path := writeCSV(t,
		testHeader,
		"1,01/01/2017,Cafe\u0301,Food,,Pune,X,Seed,10,",
	)

	res := ParseFile(path)
	if res.Err != nil {
		t.Fatal(res.Err)
	}
	if got := res.Records[0].StartupName; got != "Caf\u00e9" {
		t.Errorf("StartupName = %q, want NFC form", got)
	}
}

func TestParseAmount(t *testing.T) {
	tests := []struct {
		in   string
		want float64
		ok   bool
	}{
		{"1,000,000", 1000000, true},
		{" 2500 ", 2500, true},
		{"3.5", 3.5, true},
		{"-40", -40, true},
		{"N/A", 0, false},
		{"nan", 0, false},
		{"", 0, false},
		{",", 0, false},
		{"NaN", 0, false},
		{"Inf", 0, false},
		{"1,00.5x", 0, false},
	}
	for _, tt := range tests {
		got, ok := ParseAmount(tt.in)
		if ok != tt.ok || got != tt.want {
			t.Errorf("ParseAmount(%q) = (%v, %v), want (%v, %v)", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		in   string
		want time.Time
		ok   bool
	}{
		{"01/08/2017", time.Date(2017, 8, 1, 0, 0, 0, 0, time.UTC), true},
		{"1/8/2017", time.Date(2017, 8, 1, 0, 0, 0, 0, time.UTC), true},
		{" 15/03/2016 ", time.Date(2016, 3, 15, 0, 0, 0, 0, time.UTC), true},
		{"2017-08-01", time.Time{}, false},
		{"12/05.2015", time.Time{}, false},
		{"13/13/2015", time.Time{}, false},
		{"01/01/0001", time.Time{}, false},
		{"01/01/0002", time.Date(2, 1, 1, 0, 0, 0, 0, time.UTC), true},
	}
	for _, tt := range tests {
		got, ok := ParseDate(tt.in)
		if ok != tt.ok || !got.Equal(tt.want) {
			t.Errorf("ParseDate(%q) = (%v, %v), want (%v, %v)", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func TestFormatRoundTrip(t *testing.T) {
	d := time.Date(2019, 11, 3, 0, 0, 0, 0, time.UTC)
	if got, ok := ParseDate(FormatDate(d)); !ok || !got.Equal(d) {
		t.Errorf("date round trip = %v", got)
	}
	v := 1234567.25
	if got, ok := ParseAmount(FormatAmount(&v)); !ok || got != v {
		t.Errorf("amount round trip = %v", got)
	}
	if FormatAmount(nil) != "" || FormatDate(time.Time{}) != "" {
		t.Error("null values should format empty")
	}
}

func FuzzParseAmount(f *testing.F) {
	for _, s := range []string{"1,000", "abc", "", "1e309", "-0"} {
		f.Add(s)
	}
	f.Fuzz(func(t *testing.T, s string) {
		v, ok := ParseAmount(s)
		if !ok {
			return
		}
		if math.IsNaN(v) || math.IsInf(v, 0) {
			t.Fatalf("ParseAmount(%q) accepted %v", s, v)
		}
		if strings.Contains(FormatAmount(&v), ",") {
			t.Fatalf("formatted amount contains separator")
		}
	})
}
