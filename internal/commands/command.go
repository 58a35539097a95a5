package commands

import (
	"fmt"
	"slices"
	"strings"
	"time"
)

type Type string

const (
	TypeAdd      Type = "add"
	TypeMember   Type = "member"
	TypeAssign   Type = "assign"
	TypeUnassign Type = "unassign"
	TypeDone     Type = "done"
	TypeDelete   Type = "delete"
	TypeDrop     Type = "drop"
	TypeGoto     Type = "goto"
	TypeEdit     Type = "edit"
	TypeMove     Type = "move"
	TypeRename   Type = "rename"
)

const (
	dateLayout  = "2006-01-02"
	clockLayout = "15:04"
)

type ErrorCode string

const (
	ErrCodeEmptyInput      ErrorCode = "empty_input"
	ErrCodeUnknownCommand  ErrorCode = "unknown_command"
	ErrCodeInvalidArgument ErrorCode = "invalid_argument"
	ErrCodeHandlerMissing  ErrorCode = "handler_missing"
)

type CommandError struct {
	Code    ErrorCode
	Message string
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func invalid(format string, args ...any) *CommandError {
	return &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf(format, args...)}
}

type AddArgs struct {
	Title string
	Start time.Time
	End   time.Time
}

type MemberArgs struct {
	Name string
	Role string
}

type AssignArgs struct {
	TaskID   string
	MemberID string
}

// TargetArgs names the single task or member a command acts on.
type TargetArgs struct {
	ID string
}

type GotoArgs struct {
	Date time.Time
}

// EditArgs changes only the fields that are non-nil.
type EditArgs struct {
	TaskID      string
	Title       *string
	Description *string
	Color       *string
}

type MoveArgs struct {
	TaskID string
	Start  time.Time
	End    time.Time
}

// RenameArgs changes only the fields that are non-nil.
type RenameArgs struct {
	MemberID string
	Name     *string
	Role     *string
	Color    *string
}

type Command struct {
	Type   Type
	Raw    string
	Add    *AddArgs
	Member *MemberArgs
	Assign *AssignArgs
	Target *TargetArgs
	Goto   *GotoArgs
	Edit   *EditArgs
	Move   *MoveArgs
	Rename *RenameArgs
}

// Parse reads one palette line. Dates and clock times are interpreted in loc;
// a nil loc means time.Local.
func Parse(input string, loc *time.Location) (Command, error) {
	if loc == nil {
		loc = time.Local
	}
	raw := strings.TrimSpace(input)
	if strings.HasPrefix(raw, "/") {
		raw = strings.TrimSpace(strings.TrimPrefix(raw, "/"))
	}
	if raw == "" {
		return Command{}, &CommandError{Code: ErrCodeEmptyInput, Message: "command is empty"}
	}

	parts := strings.Fields(raw)
	head := strings.ToLower(parts[0])
	args := parts[1:]

	switch Type(head) {
	case TypeAdd:
		return parseAdd(input, args, loc)
	case TypeMember:
		return parseMember(input, args)
	case TypeAssign:
		if len(args) != 2 {
			return Command{}, invalid("assign requires a task id and a member id")
		}
		return Command{Type: TypeAssign, Raw: input, Assign: &AssignArgs{TaskID: args[0], MemberID: args[1]}}, nil
	case TypeUnassign, TypeDone, TypeDelete, TypeDrop:
		if len(args) != 1 {
			return Command{}, invalid("%s requires exactly one id", head)
		}
		return Command{Type: Type(head), Raw: input, Target: &TargetArgs{ID: args[0]}}, nil
	case TypeGoto:
		if len(args) != 1 {
			return Command{}, invalid("goto requires a date (YYYY-MM-DD)")
		}
		day, err := time.ParseInLocation(dateLayout, args[0], loc)
		if err != nil {
			return Command{}, invalid("bad date %q, want YYYY-MM-DD", args[0])
		}
		return Command{Type: TypeGoto, Raw: input, Goto: &GotoArgs{Date: day}}, nil
	case TypeEdit:
		return parseEdit(input, args)
	case TypeMove:
		return parseMove(input, args, loc)
	case TypeRename:
		return parseRename(input, args)
	default:
		return Command{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unsupported command: %s", head)}
	}
}

// add <YYYY-MM-DD> <HH:MM> <HH:MM> <title...>
func parseAdd(raw string, args []string, loc *time.Location) (Command, error) {
	if len(args) < 4 {
		return Command{}, invalid("usage: add <YYYY-MM-DD> <HH:MM> <HH:MM> <title>")
	}
	day, err := time.ParseInLocation(dateLayout, args[0], loc)
	if err != nil {
		return Command{}, invalid("bad date %q, want YYYY-MM-DD", args[0])
	}
	start, err := atClock(day, args[1])
	if err != nil {
		return Command{}, err
	}
	end, err := atClock(day, args[2])
	if err != nil {
		return Command{}, err
	}
	title := strings.TrimSpace(strings.Join(args[3:], " "))
	return Command{Type: TypeAdd, Raw: raw, Add: &AddArgs{Title: title, Start: start, End: end}}, nil
}

func atClock(day time.Time, clock string) (time.Time, error) {
	c, err := time.Parse(clockLayout, clock)
	if err != nil {
		return time.Time{}, invalid("bad time %q, want HH:MM", clock)
	}
	return time.Date(day.Year(), day.Month(), day.Day(), c.Hour(), c.Minute(), 0, 0, day.Location()), nil
}

// member <name...> [role:<role...>]
func parseMember(raw string, args []string) (Command, error) {
	name, fields := splitFields(args, "role")
	if len(name) == 0 {
		return Command{}, invalid("member requires a name")
	}
	return Command{Type: TypeMember, Raw: raw, Member: &MemberArgs{Name: strings.Join(name, " "), Role: fields["role"]}}, nil
}

// edit <task-id> [title:<text...>] [desc:<text...>] [color:<#hex>]
func parseEdit(raw string, args []string) (Command, error) {
	lead, fields := splitFields(args, "title", "desc", "color")
	if len(lead) != 1 || len(fields) == 0 {
		return Command{}, invalid("usage: edit <task-id> [title:<text>] [desc:<text>] [color:<#hex>]")
	}
	a := &EditArgs{TaskID: lead[0]}
	if v, ok := fields["title"]; ok {
		a.Title = &v
	}
	if v, ok := fields["desc"]; ok {
		a.Description = &v
	}
	if v, ok := fields["color"]; ok {
		if !isHexColor(v) {
			return Command{}, invalid("bad color %q, want #RGB or #RRGGBB", v)
		}
		a.Color = &v
	}
	return Command{Type: TypeEdit, Raw: raw, Edit: a}, nil
}

// move <task-id> <YYYY-MM-DD> <HH:MM> <HH:MM>
func parseMove(raw string, args []string, loc *time.Location) (Command, error) {
	if len(args) != 4 {
		return Command{}, invalid("usage: move <task-id> <YYYY-MM-DD> <HH:MM> <HH:MM>")
	}
	day, err := time.ParseInLocation(dateLayout, args[1], loc)
	if err != nil {
		return Command{}, invalid("bad date %q, want YYYY-MM-DD", args[1])
	}
	start, err := atClock(day, args[2])
	if err != nil {
		return Command{}, err
	}
	end, err := atClock(day, args[3])
	if err != nil {
		return Command{}, err
	}
	return Command{Type: TypeMove, Raw: raw, Move: &MoveArgs{TaskID: args[0], Start: start, End: end}}, nil
}

// rename <member-id> [<name...>] [role:<role...>] [color:<#hex>]
func parseRename(raw string, args []string) (Command, error) {
	lead, fields := splitFields(args, "role", "color")
	if len(lead) == 0 || (len(lead) == 1 && len(fields) == 0) {
		return Command{}, invalid("usage: rename <member-id> [<name>] [role:<role>] [color:<#hex>]")
	}
	a := &RenameArgs{MemberID: lead[0]}
	if len(lead) > 1 {
		name := strings.Join(lead[1:], " ")
		a.Name = &name
	}
	if v, ok := fields["role"]; ok {
		a.Role = &v
	}
	if v, ok := fields["color"]; ok {
		if !isHexColor(v) {
			return Command{}, invalid("bad color %q, want #RGB or #RRGGBB", v)
		}
		a.Color = &v
	}
	return Command{Type: TypeRename, Raw: raw, Rename: a}, nil
}

// splitFields separates leading words from key:value fields. Words after a
// field continue its value, so "title:Weekly sync" keeps both words.
func splitFields(args []string, keys ...string) ([]string, map[string]string) {
	var lead []string
	fields := map[string]string{}
	current := ""
	for _, arg := range args {
		if k, v, ok := strings.Cut(arg, ":"); ok && slices.Contains(keys, strings.ToLower(k)) {
			current = strings.ToLower(k)
			fields[current] = strings.TrimSpace(v)
			continue
		}
		if current == "" {
			lead = append(lead, arg)
			continue
		}
		fields[current] = strings.TrimSpace(fields[current] + " " + arg)
	}
	return lead, fields
}

func isHexColor(s string) bool {
	if (len(s) != 4 && len(s) != 7) || s[0] != '#' {
		return false
	}
	for _, r := range s[1:] {
		if !strings.ContainsRune("0123456789abcdefABCDEF", r) {
			return false
		}
	}
	return true
}
