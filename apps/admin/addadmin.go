package main

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/shulehub/shule/core"
	"github.com/shulehub/shule/core/account"
)

// addAdmin updates or creates an ADMIN identity.
func (cli *commandLine) addAdmin(id, first, last, email, pwd string) error {
	ctx := context.Background()
	id = core.CleanString(id, true /* lower */)
	email = core.CleanString(email, true /* lower */)

	var found bool
	idt, err := cli.idtRepo.GetIdentity(ctx, account.RoleAdmin, id)
	switch {
	case err == nil:
		found = true
	case errors.Cause(err) == account.ErrNotFound:
		idt = account.Identity{
			ID:        id,
			Role:      account.RoleAdmin,
			CreatedAt: time.Now().UTC(),
		}
	default:
		return err
	}

	idt.FirstName = core.CleanString(first)
	idt.LastName = core.CleanString(last)
	if email != "" {
		idt.Email = email
	}
	idt.UpdatedAt = time.Now().UTC()
	if err := idt.SetPassword(pwd); err != nil {
		return err
	}

	if found {
		_, err = cli.idtRepo.UpdateIdentity(ctx, idt)
	} else {
		_, err = cli.idtRepo.CreateIdentity(ctx, idt)
	}
	return err
}
