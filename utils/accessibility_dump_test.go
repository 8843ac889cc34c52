package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

const sampleDump = "APP_AL_FRENTE: com.ride.driver\r\nCLASS: android.widget.FrameLayout\nTOTAL_TEXTOS: 3\n-----\n  Aceptar por MX$70 \n\nMXN 55\n$62\n"

func TestDumpLines(t *testing.T) {
	assert.Equal(t, []string{"Aceptar por MX$70", "MXN 55", "$62"}, DumpLines(sampleDump))
	assert.Equal(t, []string{"plain text"}, DumpLines("plain text"))
	assert.Empty(t, DumpLines(""))
}

func TestDumpSourceApp(t *testing.T) {
	assert.Equal(t, "com.ride.driver", DumpSourceApp(sampleDump))
	assert.Empty(t, DumpSourceApp("Aceptar por MX$70"))
}

func TestParseOffersIgnoresDumpHeader(t *testing.T) {
	dump := "APP_AL_FRENTE: com.pay$5app\nTOTAL_TEXTOS: 1\n-----\nMXN 40"

	offers := ParseOffers(dump)

	assert.Len(t, offers, 1)
	assert.Equal(t, 40.0, offers[0].Amount)
}
