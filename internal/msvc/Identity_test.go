package msvc

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/poppolopoppo/vsexport/internal/model"
)

var registryGuidRe = regexp.MustCompile(`^\{[0-9A-F]{8}-[0-9A-F]{4}-[0-9A-F]{4}-[0-9A-F]{4}-[0-9A-F]{12}\}$`)

func TestCreateGUIDFormat(t *testing.T) {
	for _, seed := range []string{"", "grpRoot", "dEm0U1dShared Code"} {
		assert.Regexp(t, registryGuidRe, CreateGUID(seed))
	}
}

func TestCreateGUIDIsStable(t *testing.T) {
	assert.Equal(t, CreateGUID("dEm0U1dApp"), CreateGUID("dEm0U1dApp"))
	assert.NotEqual(t, CreateGUID("dEm0U1dApp"), CreateGUID("dEm0U1dVST3"))
	assert.Equal(t, CreateGUID("dEm0U1dVST3"), TargetGUID("dEm0U1d", "VST3"))
	assert.Equal(t, CreateGUID("grpSource"), GroupGUID("grpSource"))
}

func TestTargetIdentityAcrossRuns(t *testing.T) {
	first := makePluginExporter(t, model.TARGET_VST3PLUGIN)
	second := makePluginExporter(t, model.TARGET_VST3PLUGIN, model.TARGET_AAXPLUGIN)

	for _, targetType := range []model.TargetType{model.TARGET_SHAREDCODE, model.TARGET_VST3PLUGIN} {
		assert.Equal(t,
			findTarget(t, first, targetType).ProjectGuid(),
			findTarget(t, second, targetType).ProjectGuid(), "%v", targetType)
	}
	assert.NotEqual(t,
		findTarget(t, second, model.TARGET_AAXPLUGIN).ProjectGuid(),
		findTarget(t, second, model.TARGET_VST3PLUGIN).ProjectGuid())
}
