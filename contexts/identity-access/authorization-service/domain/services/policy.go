package services

import "strings"

// GrantsPermission reports whether the permission set grants the required
// permission. A trailing wildcard segment grants the whole namespace, so
// "user.*" matches "user.create".
func GrantsPermission(permissions []string, required string) bool {
	for _, p := range permissions {
		if p == required {
			return true
		}
		if prefix, ok := strings.CutSuffix(p, ".*"); ok && strings.HasPrefix(required, prefix+".") {
			return true
		}
	}
	return false
}
