package encoding_test

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"

	"github.com/ykarpov/budgetd/internal/encoding"
)

func TestNewUTF8Reader_UTF8Passthrough(t *testing.T) {
	input := "Тип;Дата;Категория;Сумма\nРасход;2025-01-05;Продукты;1000\n"

	r, err := encoding.NewUTF8Reader(bytes.NewReader([]byte(input)))
	require.NoError(t, err)

	got, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, input, string(got))
}

func TestNewUTF8Reader_UTF8BOM(t *testing.T) {
	// UTF-8 BOM (0xEF 0xBB 0xBF) should be stripped.
	input := append([]byte{0xEF, 0xBB, 0xBF}, []byte("Дата;Сумма\n")...)

	r, err := encoding.NewUTF8Reader(bytes.NewReader(input))
	require.NoError(t, err)

	got, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, "Дата;Сумма\n", string(got))
}

func TestNewUTF8Reader_Windows1251(t *testing.T) {
	const want = "Тип;Дата;Категория;Сумма;Описание\nРасход;05.01.2025;Продукты;1000;магазин\n"

	raw, err := charmap.Windows1251.NewEncoder().Bytes([]byte(want))
	require.NoError(t, err)

	r, err := encoding.NewUTF8Reader(bytes.NewReader(raw))
	require.NoError(t, err)

	got, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, want, string(got))
}

func TestNewUTF8Reader_UTF16LE(t *testing.T) {
	const want = "Дата;Сумма\n"

	var buf bytes.Buffer
	buf.Write([]byte{0xFF, 0xFE})

	for _, r := range want {
		buf.WriteByte(byte(r))
		buf.WriteByte(byte(r >> 8))
	}

	rd, err := encoding.NewUTF8Reader(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)

	got, err := io.ReadAll(rd)
	require.NoError(t, err)
	assert.Equal(t, want, string(got))
}
