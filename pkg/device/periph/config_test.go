package periph

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "board.yaml")
	require.NoError(t, os.WriteFile(path, []byte("adc_address: 0x49\nservo_pins: [PWM0, PWM1, GPIO19]\n"), 0o644))
	conf, err := LoadConfig(path)
	require.NoError(t, err)
	require.Equal(t, uint16(0x49), conf.ADCAddress)
	require.Equal(t, [3]string{"PWM0", "PWM1", "GPIO19"}, conf.ServoPins)
	require.Equal(t, DefaultConfig().EnablePin, conf.EnablePin)

	require.NoError(t, os.WriteFile(path, []byte("adc_address: 0x90\n"), 0o644))
	_, err = LoadConfig(path)
	require.Error(t, err)

	require.NoError(t, os.WriteFile(path, []byte("servo_pins: [a, '', c]\n"), 0o644))
	_, err = LoadConfig(path)
	require.Error(t, err)
}
