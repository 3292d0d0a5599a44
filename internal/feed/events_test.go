package feed

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vigilops/vigil/internal/alerts"
	"github.com/vigilops/vigil/internal/notify"
)

func TestDecodeAlertEvent(t *testing.T) {
	frame := `{
		"type": "alert",
		"alert": {
			"id": "a-42",
			"title": "Shipment delayed",
			"description": "Vessel missed the cutoff",
			"severity": "critical",
			"timestamp": 1700000000000,
			"metadata": {
				"orderRef": "PO-1001",
				"supplier": "Acme",
				"status": "awaiting_final_pod",
				"region": "apac"
			}
		}
	}`

	env, err := Decode([]byte(frame))
	require.NoError(t, err)
	require.Equal(t, EventAlert, env.Type)
	require.NotNil(t, env.Alert)

	a := env.Alert.toAlert()
	assert.Equal(t, "a-42", a.ID)
	assert.Equal(t, alerts.SeverityCritical, a.Severity)
	assert.Equal(t, time.UnixMilli(1700000000000), a.Timestamp)
	assert.Equal(t, "PO-1001", a.Metadata.OrderRef)
	assert.Equal(t, "Acme", a.Metadata.Supplier)
	assert.Equal(t, "awaiting_final_pod", a.Metadata.Status)
	assert.Equal(t, "awaiting final pod", a.Metadata.DisplayStatus())

	// Unrecognized metadata keys survive in the escape hatch.
	assert.Equal(t, "apac", a.Metadata.Extra["region"])
}

func TestDecodeAlertWithoutTimestamp(t *testing.T) {
	frame := `{"type":"alert","alert":{"id":"a1","title":"t","severity":"info"}}`

	env, err := Decode([]byte(frame))
	require.NoError(t, err)

	a := env.Alert.toAlert()
	assert.True(t, a.Timestamp.IsZero(), "absent timestamp should stay zero")
}

func TestDecodeNotificationDefaults(t *testing.T) {
	frame := `{"type":"notification","notification":{"type":"success","message":"Order updated"}}`

	env, err := Decode([]byte(frame))
	require.NoError(t, err)
	require.NotNil(t, env.Notification)

	n := env.Notification.toNotification(true)
	assert.Equal(t, notify.TypeSuccess, n.Type)
	assert.True(t, n.AutoClose, "absent autoClose should take the default")
	assert.Equal(t, time.Duration(0), n.Duration, "absent duration left for queue default")
}

func TestDecodeNotificationAbsentAutoCloseTakesConfiguredDefault(t *testing.T) {
	frame := `{"type":"notification","notification":{"type":"info","message":"Sticky by default"}}`

	env, err := Decode([]byte(frame))
	require.NoError(t, err)

	n := env.Notification.toNotification(false)
	assert.False(t, n.AutoClose, "absent autoClose should honor a false default")
}

func TestDecodeNotificationExplicitSticky(t *testing.T) {
	frame := `{"type":"notification","notification":{"id":"n1","type":"error","message":"Sync failed","autoClose":false,"duration":9000}}`

	env, err := Decode([]byte(frame))
	require.NoError(t, err)

	n := env.Notification.toNotification(true)
	assert.False(t, n.AutoClose, "explicit false must not be clobbered by the default")
	assert.Equal(t, 9*time.Second, n.Duration)
}

func TestDecodeNotificationExplicitAutoCloseOverridesFalseDefault(t *testing.T) {
	frame := `{"type":"notification","notification":{"type":"info","message":"Closes anyway","autoClose":true}}`

	env, err := Decode([]byte(frame))
	require.NoError(t, err)

	n := env.Notification.toNotification(false)
	assert.True(t, n.AutoClose, "explicit true must win over a false default")
}

func TestDecodeSnapshot(t *testing.T) {
	frame := `{"type":"snapshot","alerts":[
		{"id":"a1","title":"one","severity":"warning"},
		{"id":"a2","title":"two","severity":"info"}
	]}`

	env, err := Decode([]byte(frame))
	require.NoError(t, err)
	assert.Len(t, env.Alerts, 2)
}

func TestDecodeRejectsGarbage(t *testing.T) {
	_, err := Decode([]byte(`{not json`))
	assert.Error(t, err)

	_, err = Decode([]byte(`{"alert":{"id":"a1"}}`))
	assert.Error(t, err, "frame without type should be rejected")
}
