package cleaning

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"capitas-dashboard/internal/model"
)

// artifactHeader is the canonical column order of a processed artifact.
var artifactHeader = []string{
	"institution", "year", "month", "metric",
	"regime", "gender", "client_type", "amount",
}

// WriteArtifact persists a ProcessedTable as a CSV artifact. The file is
// written to a temporary sibling and renamed into place so concurrent
// readers never observe a partial artifact, and the output is
// byte-identical across reruns of the same input.
func WriteArtifact(path string, table *model.ProcessedTable) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create processed directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("failed to create temp artifact: %w", err)
	}
	defer os.Remove(tmp.Name())

	writer := csv.NewWriter(tmp)
	if err := writer.Write(artifactHeader); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write artifact header: %w", err)
	}
	for _, rec := range table.Records {
		row := []string{
			rec.Institution,
			strconv.Itoa(rec.Year),
			rec.Month,
			rec.Metric,
			rec.Regime,
			rec.Gender,
			rec.ClientType,
			strconv.FormatFloat(rec.Amount, 'f', -1, 64),
		}
		if err := writer.Write(row); err != nil {
			tmp.Close()
			return fmt.Errorf("failed to write artifact row: %w", err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to flush artifact: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp artifact: %w", err)
	}

	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("failed to replace artifact: %w", err)
	}
	return nil
}

// ReadArtifact loads a processed artifact back into memory. Aggregation
// reads a fresh immutable snapshot on every call rather than sharing
// mutable state across requests.
func ReadArtifact(path string) (*model.ProcessedTable, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open artifact %s: %w", path, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read artifact header: %w", err)
	}
	if len(header) != len(artifactHeader) {
		return nil, fmt.Errorf("unexpected artifact header in %s", path)
	}

	table := &model.ProcessedTable{}
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read artifact row: %w", err)
		}
		year, err := strconv.Atoi(row[1])
		if err != nil {
			return nil, fmt.Errorf("corrupt year in artifact %s: %w", path, err)
		}
		amount, err := strconv.ParseFloat(row[7], 64)
		if err != nil {
			return nil, fmt.Errorf("corrupt amount in artifact %s: %w", path, err)
		}
		table.Institution = row[0]
		table.Records = append(table.Records, model.ProcessedRecord{
			Institution: row[0],
			Year:        year,
			Month:       row[2],
			Metric:      row[3],
			Regime:      row[4],
			Gender:      row[5],
			ClientType:  row[6],
			Amount:      amount,
		})
	}
	return table, nil
}
