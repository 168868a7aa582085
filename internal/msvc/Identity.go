package msvc

import (
	"strings"

	"github.com/poppolopoppo/vsexport/internal/base"
)

const (
	VCXPROJ_PROJECT_TYPE_GUID = "{8BC9CEB8-8B4A-11D0-8D11-00A0C91BC942}"
	SOLUTION_FOLDER_TYPE_GUID = "{2150E333-8FDC-42A3-9474-1A3956D46DE8}"
)

// Deterministic registry-formatted GUID, a pure function of the seed
func CreateGUID(seed string) string {
	return strings.ToUpper(base.StringFingerprint(seed).Guid())
}

func TargetGUID(projectUID, targetName string) string {
	return CreateGUID(projectUID + targetName)
}

func GroupGUID(itemID string) string {
	return CreateGUID(itemID)
}
