package services

import "testing"

func TestGrantsPermissionExact(t *testing.T) {
	permissions := []string{"user.create", "role.view"}
	if !GrantsPermission(permissions, "user.create") {
		t.Fatal("exact permission should grant")
	}
	if GrantsPermission(permissions, "user.delete") {
		t.Fatal("missing permission should not grant")
	}
}

func TestGrantsPermissionWildcard(t *testing.T) {
	permissions := []string{"user.*"}
	if !GrantsPermission(permissions, "user.delete") {
		t.Fatal("namespace wildcard should grant")
	}
	if GrantsPermission(permissions, "role.view") {
		t.Fatal("wildcard must not cross namespaces")
	}
	if GrantsPermission(permissions, "userx.view") {
		t.Fatal("wildcard must match whole segments only")
	}
}

func TestGrantsPermissionEmpty(t *testing.T) {
	if GrantsPermission(nil, "user.view") {
		t.Fatal("empty permission set must deny")
	}
}
