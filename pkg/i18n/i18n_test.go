package i18n

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMain(m *testing.M) {
	if err := Init(); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

func TestT_DefaultsToKorean(t *testing.T) {
	assert.Equal(t, "정상", T("inventory.normal"))
	assert.Equal(t, "부족", T("inventory.low"))
	assert.Equal(t, "임박", T("inventory.expiring"))
	assert.Equal(t, "근무중", T("staff.on_duty"))
	assert.Equal(t, "대기", T("staff.standby"))
	assert.Equal(t, "대시보드 로드 실패", T("dashboard.load_failed"))
}

func TestT_EnglishFallback(t *testing.T) {
	assert.Equal(t, "Normal", T("inventory.normal", "en"))
	assert.Equal(t, "On duty", T("staff.on_duty", "en"))
}

func TestT_UnknownID(t *testing.T) {
	assert.Equal(t, "no.such.key", T("no.such.key"))
}
