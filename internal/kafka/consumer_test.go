package kafka

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMesaEvent(t *testing.T) {
	raw := []byte(`{
		"mesa_id": "mesa-7",
		"subject": "Nueva mesa asignada",
		"body": "Examen el 10 de julio",
		"exam_date": "2026-07-10T09:00:00Z",
		"url": "/mesas/7",
		"professors": [
			{"id": "prof-42", "email": "profesor@universidad.edu.ar", "phone": "5491155550123"},
			{"id": "prof-99"}
		]
	}`)

	task, err := parseMesaEvent(raw)
	require.NoError(t, err)

	assert.NotEmpty(t, task.RequestID)
	assert.Equal(t, "mesa-7", task.MesaID)
	assert.Equal(t, "Nueva mesa asignada", task.Subject)
	assert.Equal(t, time.Date(2026, 7, 10, 9, 0, 0, 0, time.UTC), task.ExamDate)
	require.Len(t, task.Professors, 2)
	assert.Equal(t, "prof-42", task.Professors[0].ID)
	assert.Equal(t, "profesor@universidad.edu.ar", task.Professors[0].Email)
	assert.Empty(t, task.Professors[1].Email)
}

func TestParseMesaEventRejectsInvalid(t *testing.T) {
	cases := map[string]string{
		"not json":        `{`,
		"missing mesa_id": `{"subject":"s","professors":[{"id":"p"}]}`,
		"missing subject": `{"mesa_id":"m","professors":[{"id":"p"}]}`,
		"no professors":   `{"mesa_id":"m","subject":"s","professors":[]}`,
		"professor no id": `{"mesa_id":"m","subject":"s","professors":[{"email":"a@b"}]}`,
		"bad exam date":   `{"mesa_id":"m","subject":"s","exam_date":"10 de julio","professors":[{"id":"p"}]}`,
	}
	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := parseMesaEvent([]byte(raw))
			assert.Error(t, err)
		})
	}
}
