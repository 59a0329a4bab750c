package testkit

import (
	"fmt"
	"math"
	"math/rand"
	"time"

	"sheetops/domain/table"
)

// SalesGeneratorConfig configures the sample workbook generator
type SalesGeneratorConfig struct {
	RowsPerMonth int   `json:"rows_per_month"`
	Year         int   `json:"year"`
	Seed         int64 `json:"seed"`
}

// DefaultSalesConfig returns sensible defaults for sample data generation
func DefaultSalesConfig() SalesGeneratorConfig {
	return SalesGeneratorConfig{
		RowsPerMonth: 40,
		Year:         2014,
		Seed:         42,
	}
}

type customer struct {
	account float64
	name    string
}

var customers = []customer{
	{737550, "Fritsch, Russel and Anderson"},
	{740150, "Barton LLC"},
	{714466, "Trantow-Barrows"},
	{218895, "Kulas Inc"},
	{307599, "Kassulke, Ondricka and Metz"},
	{412290, "Jerde-Hilpert"},
	{729833, "Koepp Ltd"},
	{146832, "Kiehn-Spinka"},
	{688981, "Keeling LLC"},
	{786968, "Frami, Hills and Schmidt"},
	{239344, "Stokes LLC"},
	{672390, "Kuhn-Gusikowski"},
	{141962, "Herman LLC"},
	{424914, "White-Trantow"},
	{527099, "Sanford and Sons"},
	{642753, "Pollich LLC"},
	{383080, "Will LLC"},
	{257198, "Cronin, Oberbrunner and Spencer"},
	{604255, "Halvorson, Crona and Champlin"},
	{163416, "Purdy-Kunde"},
}

var skus = []string{
	"B1-20000", "S1-27722", "B1-86481", "S1-06532", "S2-77896",
	"B1-69924", "S2-34077", "S2-83881", "S1-82801", "B1-38851",
	"S2-11481", "S1-65481", "S2-00301", "S2-82423", "S1-47412",
	"S1-93683", "B1-50809", "S2-16558", "S1-30248", "B1-04202",
	"S3-46173", "B1-53102", "B1-53636", "S2-10342", "B1-33087",
}

// compStates mixes clean names with the misspellings and odd casing a
// hand-typed address book accumulates. The last entry matches nothing.
var compStates = []string{
	"Texas", "Pennsylvana", "WashingtON", "Minnesotta", "California",
	"New York", "ohio", "Illinois", "north carolina", "Georgia",
	"Arizona", "Iowa", "Maine", "Virginia", "Zzzzyx",
}

var cities = []string{
	"New Jaycob", "Port Khadijah", "New Lilianland", "Hyattburgh", "Shanahanchester",
	"Rosaside", "Lake Juliannton", "New Jaycob", "Wiegandmouth", "Fadelhaven",
}

var streets = []string{
	"Sean Highway", "Toy Radial", "Ferry Parkway", "Emmerich Lodge", "Corkery Underpass",
}

// SalesDataGenerator builds the sample workbooks the walkthroughs read
type SalesDataGenerator struct {
	config SalesGeneratorConfig
	rng    *rand.Rand
}

// NewSalesDataGenerator creates a new generator. The same config always
// yields the same data.
func NewSalesDataGenerator(config SalesGeneratorConfig) *SalesDataGenerator {
	if config.RowsPerMonth <= 0 {
		config.RowsPerMonth = DefaultSalesConfig().RowsPerMonth
	}
	if config.Year == 0 {
		config.Year = DefaultSalesConfig().Year
	}
	return &SalesDataGenerator{
		config: config,
		rng:    rand.New(rand.NewSource(config.Seed)),
	}
}

var salesColumns = []table.Column{
	{Name: "account number", Type: table.ColumnNumeric},
	{Name: "name", Type: table.ColumnString},
	{Name: "sku", Type: table.ColumnString},
	{Name: "quantity", Type: table.ColumnNumeric},
	{Name: "unit price", Type: table.ColumnNumeric},
	{Name: "ext price", Type: table.ColumnNumeric},
	{Name: "date", Type: table.ColumnString},
}

// MonthlySales generates one month of orders sorted by date. The first
// customer always orders on the first of the month.
func (g *SalesDataGenerator) MonthlySales(month time.Month) (*table.RowSet, error) {
	start := time.Date(g.config.Year, month, 1, 0, 0, 0, 0, time.UTC)
	seconds := int(start.AddDate(0, 1, 0).Sub(start).Seconds())

	records := make([]table.Record, 0, g.config.RowsPerMonth)
	for i := 0; i < g.config.RowsPerMonth; i++ {
		c := customers[g.rng.Intn(len(customers))]
		at := start.Add(time.Duration(g.rng.Intn(seconds)) * time.Second)
		if i == 0 {
			c = customers[0]
			at = start.Add(time.Duration(g.rng.Intn(86400)) * time.Second)
		}
		records = append(records, g.order(c, skus[g.rng.Intn(len(skus))], g.rng.Intn(50)+1, at))
	}

	schema, err := table.NewSchema(salesColumns...)
	if err != nil {
		return nil, err
	}
	rs, err := table.New(schema, records)
	if err != nil {
		return nil, err
	}
	return rs.SortBy(table.Asc("date"))
}

func (g *SalesDataGenerator) order(c customer, sku string, qty int, at time.Time) table.Record {
	price := round2(10 + g.rng.Float64()*90)
	return table.Record{
		table.NewNumeric(c.account),
		table.NewString(c.name),
		table.NewString(sku),
		table.NewNumeric(float64(qty)),
		table.NewNumeric(price),
		table.NewNumeric(round2(float64(qty) * price)),
		table.NewString(at.Format("2006-01-02 15:04:05")),
	}
}

// SampleSales generates a full year of orders. A bulk order of a B1-531 part
// is placed in every month so the part-number filters always find something.
func (g *SalesDataGenerator) SampleSales() (*table.RowSet, error) {
	var year *table.RowSet
	for m := time.January; m <= time.December; m++ {
		rs, err := g.MonthlySales(m)
		if err != nil {
			return nil, err
		}
		bulk := time.Date(g.config.Year, m, 14, 12, 0, 0, 0, time.UTC)
		c := customers[1+int(m)%(len(customers)-1)]
		if rs, err = rs.Append(g.order(c, "B1-53102", 41+g.rng.Intn(10), bulk)...); err != nil {
			return nil, err
		}
		if rs, err = rs.SortBy(table.Asc("date")); err != nil {
			return nil, err
		}
		if year == nil {
			year = rs
			continue
		}
		if year, err = year.Concat(rs); err != nil {
			return nil, err
		}
	}
	return year, nil
}

// CustomerStatus assigns gold or silver to three quarters of the customers.
// Every fourth customer is left out so the join has unmatched accounts.
func (g *SalesDataGenerator) CustomerStatus() (*table.RowSet, error) {
	schema, err := table.NewSchema(
		table.Column{Name: "account number", Type: table.ColumnNumeric},
		table.Column{Name: "name", Type: table.ColumnString},
		table.Column{Name: "status", Type: table.ColumnString},
	)
	if err != nil {
		return nil, err
	}

	var records []table.Record
	for i, c := range customers {
		if i%4 == 3 {
			continue
		}
		status := "silver"
		if i == 0 || (i > 1 && g.rng.Float64() < 0.4) {
			status = "gold"
		}
		records = append(records, table.Record{
			table.NewNumeric(c.account),
			table.NewString(c.name),
			table.NewString(status),
		})
	}
	return table.New(schema, records)
}

// CompData generates an address book with quarterly sales figures
func (g *SalesDataGenerator) CompData() (*table.RowSet, error) {
	schema, err := table.NewSchema(
		table.Column{Name: "account", Type: table.ColumnNumeric},
		table.Column{Name: "name", Type: table.ColumnString},
		table.Column{Name: "street", Type: table.ColumnString},
		table.Column{Name: "city", Type: table.ColumnString},
		table.Column{Name: "state", Type: table.ColumnString},
		table.Column{Name: "postal-code", Type: table.ColumnNumeric},
		table.Column{Name: "Jan", Type: table.ColumnNumeric},
		table.Column{Name: "Feb", Type: table.ColumnNumeric},
		table.Column{Name: "Mar", Type: table.ColumnNumeric},
	)
	if err != nil {
		return nil, err
	}

	records := make([]table.Record, len(compStates))
	for i, state := range compStates {
		c := customers[i%len(customers)]
		records[i] = table.Record{
			table.NewNumeric(float64(211829 + 1000*i)),
			table.NewString(c.name),
			table.NewString(fmt.Sprintf("%d %s", 100+g.rng.Intn(90000), streets[g.rng.Intn(len(streets))])),
			table.NewString(cities[g.rng.Intn(len(cities))]),
			table.NewString(state),
			table.NewNumeric(float64(10000 + g.rng.Intn(89999))),
			table.NewNumeric(float64(10000 + g.rng.Intn(190000))),
			table.NewNumeric(float64(10000 + g.rng.Intn(190000))),
			table.NewNumeric(float64(10000 + g.rng.Intn(190000))),
		}
	}
	return table.New(schema, records)
}

var dataTypesHeader = []string{
	"Customer Number", "Customer Name", "2016", "2017", "Percent Growth",
	"Jan Units", "Month", "Day", "Year", "Active",
}

var dataTypesRows = [][]string{
	{"10002.0", "Quest Industries", "$125,000.00", "$162,500.00", "30.00%", "500", "1", "10", "2015", "Y"},
	{"552278.0", "Smith Plumbing", "$920,000.00", "$1,012,000.00", "10.00%", "700", "6", "15", "2014", "Y"},
	{"23477.0", "ACME Industrial", "$50,000.00", "$62,500.00", "25.00%", "125", "3", "29", "2016", "Y"},
	{"24900.0", "Brekke LTD", "$350,000.00", "$490,000.00", "4.00%", "75", "10", "27", "2015", "Y"},
	{"651029.0", "Harbor Co", "$15,000.00", "$12,750.00", "-15.00%", "Closed", "2", "2", "2014", "N"},
}

// DataTypes returns the fixed customer table whose cells are formatted the
// way a spreadsheet export formats them: currency, percentages and Y/N.
func (g *SalesDataGenerator) DataTypes() (*table.RowSet, error) {
	cols := make([]table.Column, len(dataTypesHeader))
	for i, h := range dataTypesHeader {
		cols[i] = table.Column{Name: h, Type: table.ColumnString}
	}
	schema, err := table.NewSchema(cols...)
	if err != nil {
		return nil, err
	}
	records := make([]table.Record, len(dataTypesRows))
	for i, row := range dataTypesRows {
		rec := make(table.Record, len(row))
		for j, cell := range row {
			rec[j] = table.NewString(cell)
		}
		records[i] = rec
	}
	return table.New(schema, records)
}

func round2(x float64) float64 {
	return math.Round(x*100) / 100
}
