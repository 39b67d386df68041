package manifest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeXML(t *testing.T, dir, rel, content string) string {
	t.Helper()
	full := filepath.Join(dir, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(full), 0755))
	require.NoError(t, os.WriteFile(full, []byte(content), 0644))
	return full
}

const customManifest = `<manifest version="2.0" type="device" target-level="3">
  <hal format="hidl">
    <name>android.hardware.audio</name>
    <transport>hwbinder</transport>
    <fqname>@7.0::IDevicesFactory/default</fqname>
  </hal>
  <hal format="hidl">
    <name>android.hardware.camera.provider</name>
    <transport>hwbinder</transport>
  </hal>
  <hal format="aidl">
    <name>vendor.oem.light</name>
  </hal>
</manifest>`

func TestParse(t *testing.T) {
	path := writeXML(t, t.TempDir(), "manifest.xml", customManifest)

	m, err := Parse(path)
	require.NoError(t, err)
	require.Equal(t, "device", m.Type)
	require.Equal(t, "2.0", m.Version)
	require.Equal(t, "3", m.TargetLevel)
	require.Len(t, m.HALs, 3)
	require.Equal(t, "android.hardware.audio", m.HALs[0].Name)
	require.Equal(t, "vendor.oem.light", m.HALs[2].Name)
}

func TestLoadStockManifestsFiltersByType(t *testing.T) {
	root := t.TempDir()
	writeXML(t, root, "vendor/etc/vintf/manifest.xml",
		`<manifest version="1.0" type="device"><hal><name>a</name></hal></manifest>`)
	writeXML(t, root, "system/etc/vintf/compatibility_matrix.xml",
		`<manifest version="1.0" type="framework"><hal><name>b</name></hal></manifest>`)
	writeXML(t, root, "vendor/etc/not-a-manifest.xml",
		`<permissions><feature name="x"/></permissions>`)
	writeXML(t, root, "vendor/etc/broken.xml", `<manifest`)

	manifests, warnings, err := LoadStockManifests(root, "device")
	require.NoError(t, err)
	require.Len(t, manifests, 1)
	require.Len(t, manifests[0].HALs, 1)
	require.Len(t, warnings, 1, "unparseable XML warns, it does not abort")
}

func TestCompare(t *testing.T) {
	dir := t.TempDir()
	custom, err := Parse(writeXML(t, dir, "my/manifest.xml", customManifest))
	require.NoError(t, err)

	// Stock carries audio identically (different formatting), camera with
	// a different transport, and no light HAL at all.
	root := filepath.Join(dir, "stock")
	writeXML(t, root, "vendor/etc/vintf/manifest.xml",
		`<manifest version="2.0" type="device">
  <hal format="hidl">
    <name>android.hardware.audio</name>
    <fqname>@7.0::IDevicesFactory/default</fqname>
    <transport>hwbinder</transport>
  </hal>
  <hal format="hidl">
    <name>android.hardware.camera.provider</name>
    <transport>binder</transport>
  </hal>
</manifest>`)

	stock, _, err := LoadStockManifests(root, "device")
	require.NoError(t, err)

	results := Compare(custom, stock)
	require.Len(t, results, 3)

	require.Equal(t, HALMatch, results[0].Status, "formatting and child order must not matter")
	require.NotEmpty(t, results[0].StockFile)

	require.Equal(t, HALMismatch, results[1].Status)
	require.Equal(t, HALNotFound, results[2].Status)
	require.Equal(t, "vendor.oem.light", results[2].Name)
}
