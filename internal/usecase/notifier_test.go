package usecase_test

import (
	"bytes"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taqueando-console/internal/usecase"
)

func TestNoticeBoard(t *testing.T) {
	board := usecase.NewNoticeBoard(2)
	board.Success("uno")
	board.Error("dos")
	board.Success("tres")

	notices := board.Drain()
	require.Len(t, notices, 2)
	assert.Equal(t, "error", notices[0].Kind)
	assert.Equal(t, "dos", notices[0].Message)
	assert.Equal(t, "success", notices[1].Kind)
	assert.Equal(t, "tres", notices[1].Message)

	assert.Empty(t, board.Drain())
}

func TestNotifiers(t *testing.T) {
	var buf bytes.Buffer
	logger := logrus.New()
	logger.SetOutput(&buf)
	logger.SetFormatter(&logrus.JSONFormatter{})

	board := usecase.NewNoticeBoard(0)
	n := usecase.Notifiers{board, usecase.LogNotifier{Logger: logger}}

	n.Success("Arqueo guardado exitosamente")
	n.Error("Error al guardar el arqueo")

	assert.Len(t, board.Drain(), 2)
	assert.Contains(t, buf.String(), `"notice":"success"`)
	assert.Contains(t, buf.String(), `"msg":"Error al guardar el arqueo"`)
}
