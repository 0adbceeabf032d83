//go:build windows

package elevation

import (
	"strings"

	"golang.org/x/sys/windows"
)

// isAdmin reports whether the process token is a member of BUILTIN\Administrators.
func isAdmin() (bool, error) {
	var adminSid *windows.SID
	err := windows.AllocateAndInitializeSid(
		&windows.SECURITY_NT_AUTHORITY,
		2,
		windows.SECURITY_BUILTIN_DOMAIN_RID,
		windows.DOMAIN_ALIAS_RID_ADMINS,
		0, 0, 0, 0, 0, 0,
		&adminSid)
	if err != nil {
		return false, err
	}
	defer windows.FreeSid(adminSid)

	token := windows.Token(0)
	return token.IsMember(adminSid)
}

// relaunchElevated starts exe through the "runas" verb, which shows the UAC prompt.
func relaunchElevated(exe string, args []string) error {
	quoted := make([]string, len(args))
	for i, a := range args {
		quoted[i] = windows.EscapeArg(a)
	}

	verb, err := windows.UTF16PtrFromString("runas")
	if err != nil {
		return err
	}
	file, err := windows.UTF16PtrFromString(exe)
	if err != nil {
		return err
	}
	params, err := windows.UTF16PtrFromString(strings.Join(quoted, " "))
	if err != nil {
		return err
	}

	return windows.ShellExecute(0, verb, file, params, nil, windows.SW_NORMAL)
}
