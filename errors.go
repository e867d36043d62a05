/*
 * errors.go, part of chemform.
 *
 *
 * Copyright 2024 Raul Mera <rmera{at}usachDOTcl>
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 *
 * chemform is developed at the Universidad de Santiago de Chile
 * (USACH)
 *
 */

package chem

import (
	"errors"
	"fmt"
	"strings"
)

// Kind identifies a class of failure. Kinds are errors themselves, so they
// can be used as targets for errors.Is.
type Kind string

func (k Kind) Error() string { return string(k) }

const (
	//The formula itself is malformed. Fatal for a whole resolution.
	ErrParse = Kind("chemform: malformed formula")
	//An element symbol is not present in the property table.
	ErrUnresolvedElement = Kind("chemform: unresolved element")
	//Empty or contradictory count mapping.
	ErrAmbiguousStructure = Kind("chemform: ambiguous structure")
	//Collaborator text could not be turned into a structure.
	ErrSchemaExtraction = Kind("chemform: schema extraction failed")
	//The collaborator call itself failed.
	ErrResolver = Kind("chemform: external resolver failed")
)

// CError is the error type returned by chemform. It carries a Kind, so it can be
// matched with errors.Is(err, chem.ErrParse), an optional cause, and the
// decoration trail of the functions it passed through.
type CError struct {
	msg   string
	kind  Kind
	cause error
	deco  []string
}

// NewError returns a new error of the given kind. deco, if given, is the
// initial decoration (usually the name of the function creating the error).
func NewError(kind Kind, msg string, deco ...string) *CError {
	return &CError{msg: msg, kind: kind, deco: deco}
}

// WrapError returns an error of the given kind with cause as the underlying error.
func WrapError(kind Kind, cause error, msg string, deco ...string) *CError {
	return &CError{msg: msg, kind: kind, cause: cause, deco: deco}
}

func errorf(kind Kind, caller string, format string, args ...interface{}) *CError {
	return NewError(kind, fmt.Sprintf(format, args...), caller)
}

// Error returns the message, preceded by the kind and followed by the cause, if any.
func (err *CError) Error() string {
	var b strings.Builder
	b.WriteString(string(err.kind))
	if err.msg != "" {
		b.WriteString(": ")
		b.WriteString(err.msg)
	}
	if err.cause != nil {
		b.WriteString(": ")
		b.WriteString(err.cause.Error())
	}
	return b.String()
}

// Decorate will add the dec string to the decoration slice of strings of the error,
// and return the resulting slice.
func (err *CError) Decorate(dec string) []string {
	if dec == "" {
		return err.deco
	}
	err.deco = append(err.deco, dec)
	return err.deco
}

// Kind returns the kind of the error.
func (err *CError) Kind() Kind { return err.kind }

// Message returns the message without the kind or the cause.
func (err *CError) Message() string { return err.msg }

// Unwrap returns the cause, if any.
func (err *CError) Unwrap() error { return err.cause }

// Is reports whether target is the kind of this error.
func (err *CError) Is(target error) bool {
	k, ok := target.(Kind)
	return ok && k == err.kind
}

// errDecorate decorates err with the caller's name if it is a chemform Error,
// and returns it.
func errDecorate(err error, caller string) error {
	if err == nil {
		return nil
	}
	var e Error
	if errors.As(err, &e) {
		e.Decorate(caller)
	}
	return err
}
