package loader

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestReadTableCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "recaudos.csv")
	content := "Año,Mes,Recaudos\n2020,Enero,\"1,500.00\"\n2020,Febrero,300\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	table, err := ReadTable(path, "cnss")
	require.NoError(t, err)
	assert.Equal(t, "cnss", table.Institution)
	assert.Equal(t, path, table.SourcePath)
	require.Len(t, table.Rows, 3)
	assert.Equal(t, []string{"Año", "Mes", "Recaudos"}, table.Rows[0])
	assert.Equal(t, "1,500.00", table.Rows[1][2])
}

func TestReadTableRaggedCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ragged.csv")
	content := "Años,,2020,2021\nAfiliados,Subsidiado,100,200\nFuente: SISALRIL\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	table, err := ReadTable(path, "one")
	require.NoError(t, err)
	require.Len(t, table.Rows, 3)
	assert.Len(t, table.Rows[0], 4)
	assert.Len(t, table.Rows[2], 1)
}

func TestReadTableExcel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "export.xlsx")

	f := excelize.NewFile()
	require.NoError(t, f.SetCellValue("Sheet1", "A1", "Año"))
	require.NoError(t, f.SetCellValue("Sheet1", "B1", "Recaudos"))
	require.NoError(t, f.SetCellValue("Sheet1", "A2", 2020))
	require.NoError(t, f.SetCellValue("Sheet1", "B2", 1500))
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	table, err := ReadTable(path, "one")
	require.NoError(t, err)
	require.Len(t, table.Rows, 2)
	assert.Equal(t, "Año", table.Rows[0][0])
	assert.Equal(t, "2020", table.Rows[1][0])
}

func TestReadTableMissingFile(t *testing.T) {
	_, err := ReadTable(filepath.Join(t.TempDir(), "nope.csv"), "one")
	require.Error(t, err)
	assert.True(t, IsReadError(err))

	var re *ReadError
	require.ErrorAs(t, err, &re)
	assert.Contains(t, re.Path, "nope.csv")
}

func TestReadTableEmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vacio.csv")
	require.NoError(t, os.WriteFile(path, nil, 0644))

	_, err := ReadTable(path, "cnss")
	require.Error(t, err)
	assert.True(t, IsReadError(err))
}
