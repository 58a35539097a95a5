package commands

import (
	"context"
	"fmt"
)

type Result struct {
	Message string
}

type Handlers struct {
	Add      func(context.Context, AddArgs) (Result, error)
	Member   func(context.Context, MemberArgs) (Result, error)
	Assign   func(context.Context, AssignArgs) (Result, error)
	Unassign func(context.Context, TargetArgs) (Result, error)
	Done     func(context.Context, TargetArgs) (Result, error)
	Delete   func(context.Context, TargetArgs) (Result, error)
	Drop     func(context.Context, TargetArgs) (Result, error)
	Goto     func(context.Context, GotoArgs) (Result, error)
	Edit     func(context.Context, EditArgs) (Result, error)
	Move     func(context.Context, MoveArgs) (Result, error)
	Rename   func(context.Context, RenameArgs) (Result, error)
}

func missing(t Type) error {
	return &CommandError{Code: ErrCodeHandlerMissing, Message: fmt.Sprintf("%s handler not configured", t)}
}

func Execute(ctx context.Context, cmd Command, handlers Handlers) (Result, error) {
	switch cmd.Type {
	case TypeAdd:
		if handlers.Add == nil {
			return Result{}, missing(cmd.Type)
		}
		return handlers.Add(ctx, *cmd.Add)
	case TypeMember:
		if handlers.Member == nil {
			return Result{}, missing(cmd.Type)
		}
		return handlers.Member(ctx, *cmd.Member)
	case TypeAssign:
		if handlers.Assign == nil {
			return Result{}, missing(cmd.Type)
		}
		return handlers.Assign(ctx, *cmd.Assign)
	case TypeGoto:
		if handlers.Goto == nil {
			return Result{}, missing(cmd.Type)
		}
		return handlers.Goto(ctx, *cmd.Goto)
	case TypeEdit:
		if handlers.Edit == nil {
			return Result{}, missing(cmd.Type)
		}
		return handlers.Edit(ctx, *cmd.Edit)
	case TypeMove:
		if handlers.Move == nil {
			return Result{}, missing(cmd.Type)
		}
		return handlers.Move(ctx, *cmd.Move)
	case TypeRename:
		if handlers.Rename == nil {
			return Result{}, missing(cmd.Type)
		}
		return handlers.Rename(ctx, *cmd.Rename)
	case TypeUnassign, TypeDone, TypeDelete, TypeDrop:
		h := map[Type]func(context.Context, TargetArgs) (Result, error){
			TypeUnassign: handlers.Unassign,
			TypeDone:     handlers.Done,
			TypeDelete:   handlers.Delete,
			TypeDrop:     handlers.Drop,
		}[cmd.Type]
		if h == nil {
			return Result{}, missing(cmd.Type)
		}
		return h(ctx, *cmd.Target)
	default:
		return Result{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unknown command type: %s", cmd.Type)}
	}
}
