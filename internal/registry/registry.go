// Package registry ingests the national open-data vehicle registry: a ZIP
// archive containing one CSV export with roughly a hundred columns per
// vehicle. Only the columns the API stores are mapped; the rest are ignored.
package registry

import (
	"archive/zip"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/gocarina/gocsv"
)

// Record is one row of the registry CSV. Column names follow the dataset's
// published export headers; columns without a matching field are skipped.
type Record struct {
	FirstRegDate    string `csv:"firstRegDate"`
	FirstRegDateSLO string `csv:"firstRegDateSLO"`
	Status          string `csv:"status"`
	Brand           string `csv:"brand"`
	Commercial      string `csv:"commercialDesignation"`
	CountryDesc     string `csv:"countryDesc"`
	VIN             string `csv:"vin"`
	VehicleWeight   string `csv:"vehicleWeight"`
	CategoryDesc    string `csv:"vehicleCategoryDesc"`
	EngineDispl     string `csv:"engineDisplacement"`
	NominalPower    string `csv:"nominalPower"`
	FuelTypeDesc    string `csv:"fuelTypeDesc"`
	EngineType      string `csv:"engineType"`
	ColorDesc       string `csv:"vehicleColorDesc"`
	MaxSpeed        string `csv:"maxSpeed"`
	EnvLabel        string `csv:"envLabel"`
	BodyTypeDesc    string `csv:"bodyTypeDesc"`
	Kilometers      string `csv:"kilometersMiles"`
}

// Payload is the JSON body posted to POST /vehicles/add for one vehicle.
// Field names match the API's vehicle request.
type Payload struct {
	VIN           string    `json:"vin"`
	Brand         string    `json:"brand"`
	Model         string    `json:"model"`
	FirstRegDate  time.Time `json:"firstRegDate"`
	FirstRegSlo   time.Time `json:"firstRegDateSlo"`
	FuelType      string    `json:"fuelType"`
	BodyType      string    `json:"bodyType"`
	Color         string    `json:"color"`
	Category      string    `json:"vehicleCategory"`
	EnvLabel      string    `json:"envLabel"`
	OriginCountry string    `json:"originCountry"`
	Status        string    `json:"status"`
	MaxSpeed      float64   `json:"maxSpeed"`
	Kilometers    float64   `json:"kilometers"`
	Weight        int       `json:"weight"`
	NominalPower  int       `json:"nominalPower"`
	EngineDispl   int       `json:"engineDisplacement"`
	EngineType    string    `json:"engineType"`
}

// ParseZip opens the archive at path and parses the first CSV member.
func ParseZip(path string) ([]Record, error) {
	archive, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("registry.ParseZip: %w", err)
	}
	defer archive.Close()

	for _, member := range archive.File {
		if !strings.HasSuffix(strings.ToLower(member.Name), ".csv") {
			continue
		}
		f, err := member.Open()
		if err != nil {
			return nil, fmt.Errorf("registry.ParseZip: open %s: %w", member.Name, err)
		}
		defer f.Close()
		return Parse(f)
	}

	return nil, fmt.Errorf("registry.ParseZip: no csv member in %s", path)
}

// Parse decodes registry records from CSV. Rows with missing columns are
// tolerated — the registry export is not perfectly rectangular.
func Parse(r io.Reader) ([]Record, error) {
	gocsv.SetCSVReader(func(in io.Reader) gocsv.CSVReader {
		cr := csv.NewReader(in)
		cr.FieldsPerRecord = -1
		cr.Comma = ';'
		return cr
	})

	var records []Record
	if err := gocsv.Unmarshal(r, &records); err != nil {
		return nil, fmt.Errorf("registry.Parse: %w", err)
	}
	return records, nil
}

// Payloads converts records into API payloads, dropping rows that cannot be
// mapped (missing VIN or unparseable registration dates). The second return
// is the number of rows dropped.
func Payloads(records []Record) ([]Payload, int) {
	var (
		out     []Payload
		skipped int
	)
	for _, rec := range records {
		p, err := rec.payload()
		if err != nil {
			skipped++
			continue
		}
		out = append(out, p)
	}
	return out, skipped
}

func (r Record) payload() (Payload, error) {
	vin := strings.TrimSpace(r.VIN)
	if vin == "" {
		return Payload{}, fmt.Errorf("missing vin")
	}

	firstReg, err := parseDate(r.FirstRegDate)
	if err != nil {
		return Payload{}, fmt.Errorf("firstRegDate: %w", err)
	}
	firstRegSlo, err := parseDate(r.FirstRegDateSLO)
	if err != nil {
		return Payload{}, fmt.Errorf("firstRegDateSLO: %w", err)
	}

	return Payload{
		VIN:           vin,
		Brand:         strings.TrimSpace(r.Brand),
		Model:         strings.TrimSpace(r.Commercial),
		FirstRegDate:  firstReg,
		FirstRegSlo:   firstRegSlo,
		FuelType:      strings.TrimSpace(r.FuelTypeDesc),
		BodyType:      strings.TrimSpace(r.BodyTypeDesc),
		Color:         strings.TrimSpace(r.ColorDesc),
		Category:      strings.TrimSpace(r.CategoryDesc),
		EnvLabel:      strings.TrimSpace(r.EnvLabel),
		OriginCountry: strings.TrimSpace(r.CountryDesc),
		Status:        strings.TrimSpace(r.Status),
		MaxSpeed:      parseFloat(r.MaxSpeed),
		Kilometers:    parseFloat(r.Kilometers),
		Weight:        parseInt(r.VehicleWeight),
		NominalPower:  parseInt(r.NominalPower),
		EngineDispl:   parseInt(r.EngineDispl),
		EngineType:    strings.TrimSpace(r.EngineType),
	}, nil
}

// parseDate reads the registry's DD.MM.YYYY date format as UTC midnight.
func parseDate(s string) (time.Time, error) {
	t, err := time.ParseInLocation("2.1.2006", strings.TrimSpace(s), time.UTC)
	if err != nil {
		return time.Time{}, err
	}
	return t, nil
}

// parseFloat reads a numeric column, treating blanks and garbage as 0 —
// numeric columns in the export are frequently empty.
func parseFloat(s string) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(strings.ReplaceAll(s, ",", ".")), 64)
	if err != nil {
		return 0
	}
	return f
}

func parseInt(s string) int {
	return int(parseFloat(s))
}
