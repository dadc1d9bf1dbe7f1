// Copyright 2019 The go-ultiledger Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package service

import (
	"net/http"

	"github.com/emicklei/go-restful"
)

const mimeForm = "application/x-www-form-urlencoded"

// NewHandler routes the /kin web service to a hub over g.
func NewHandler(g Gateway) http.Handler {
	hub := NewHub(g)

	ws := new(restful.WebService)
	ws.Path("/kin").
		Produces(restful.MIME_JSON)
	ws.Route(ws.GET("/accounts/{id}").To(hub.GetAccount))
	ws.Route(ws.GET("/accounts/{id}/balance").To(hub.GetBalance))
	ws.Route(ws.POST("/tx").Consumes(mimeForm).To(hub.SubmitTx))

	container := restful.NewContainer()
	container.Add(ws)

	return container
}
