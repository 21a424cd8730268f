/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package controller

import (
	"io"
	"net/http"
	"strings"

	"github.com/go-kratos/kratos/v2/encoding"
	_ "github.com/go-kratos/kratos/v2/encoding/json"
	"github.com/julienschmidt/httprouter"

	"github.com/suparena/entitycrud/condition"
	"github.com/suparena/entitycrud/errors"
	"github.com/suparena/entitycrud/storagemodels"
)

const maxBodyBytes = 1 << 20

// Routes mounts c under prefix:
//
//	GET    prefix         list
//	GET    prefix/:key    find
//	POST   prefix         create
//	PUT    prefix         update
//	DELETE prefix/:keys   delete (comma-delimited keys)
//	POST   prefix/query   query
//
// List, find and query answer with the JSON Result. Create, update and
// delete answer with the plain-text outcome.
func Routes[T storagemodels.Entity[K], K comparable](router *httprouter.Router, prefix string, c *Controller[T, K]) {
	prefix = "/" + strings.Trim(prefix, "/")
	h := &handler[T, K]{c: c, codec: encoding.GetCodec("json")}

	router.GET(prefix, h.list)
	router.GET(prefix+"/:key", h.find)
	router.POST(prefix, h.create)
	router.PUT(prefix, h.update)
	router.DELETE(prefix+"/:keys", h.delete)
	router.POST(prefix+"/query", h.query)
}

type handler[T storagemodels.Entity[K], K comparable] struct {
	c     *Controller[T, K]
	codec encoding.Codec
}

func (h *handler[T, K]) list(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	res := h.c.List(r.Context())
	writeJSON(w, h.codec, statusOf(res.Outcome, res.Kind), res)
}

func (h *handler[T, K]) find(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	res := h.c.Find(r.Context(), p.ByName("key"))
	writeJSON(w, h.codec, statusOf(res.Outcome, res.Kind), res)
}

func (h *handler[T, K]) create(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var entity T
	if err := decodeBody(r, h.codec, &entity); err != nil {
		writeText(w, http.StatusBadRequest, failure[bool](err))
		return
	}
	res := h.c.Create(r.Context(), entity)
	writeText(w, statusOf(res.Outcome, res.Kind), res)
}

func (h *handler[T, K]) update(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var entity T
	if err := decodeBody(r, h.codec, &entity); err != nil {
		writeText(w, http.StatusBadRequest, failure[bool](err))
		return
	}
	res := h.c.Update(r.Context(), entity)
	writeText(w, statusOf(res.Outcome, res.Kind), res)
}

func (h *handler[T, K]) delete(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	res := h.c.Delete(r.Context(), p.ByName("keys"))
	writeText(w, statusOf(res.Outcome, res.Kind), res)
}

func (h *handler[T, K]) query(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var cond condition.Condition
	if err := decodeBody(r, h.codec, &cond); err != nil {
		res := failure[[]T](err)
		writeJSON(w, h.codec, http.StatusBadRequest, res)
		return
	}
	res := h.c.Query(r.Context(), &cond)
	writeJSON(w, h.codec, statusOf(res.Outcome, res.Kind), res)
}

func decodeBody(r *http.Request, codec encoding.Codec, v any) error {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		return errors.NewValidationError("body", err.Error())
	}
	if len(body) == 0 {
		return errors.NewValidationError("body", "request body is empty")
	}
	if err := codec.Unmarshal(body, v); err != nil {
		return errors.NewValidationError("body", err.Error())
	}
	return nil
}

func statusOf(outcome Outcome, kind errors.Kind) int {
	switch outcome {
	case OutcomeOK:
		return http.StatusOK
	case OutcomeError:
		return http.StatusInternalServerError
	}

	switch kind {
	case errors.KindNotFound:
		return http.StatusNotFound
	case errors.KindAlreadyExists:
		return http.StatusConflict
	case errors.KindValidation, errors.KindSchema, errors.KindNotResolved:
		return http.StatusBadRequest
	default:
		return http.StatusUnprocessableEntity
	}
}

func writeJSON(w http.ResponseWriter, codec encoding.Codec, status int, v any) {
	body, err := codec.Marshal(v)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}

func writeText(w http.ResponseWriter, status int, res Result[bool]) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(status)
	_, _ = io.WriteString(w, res.Text())
}
