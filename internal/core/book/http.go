// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package book

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/yomira-kids/internal/platform/apperr"
	requestutil "github.com/taibuivan/yomira-kids/internal/platform/request"
	"github.com/taibuivan/yomira-kids/internal/platform/respond"
	"github.com/taibuivan/yomira-kids/pkg/pagination"
)

// # Handler Implementation

// Handler implements the HTTP layer for the reading app.
// It translates web requests into [Service] calls.
type Handler struct {
	service *Service
}

// NewHandler constructs a new book [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes attaches the catalog, reader, favorites and home endpoints.
//
// # Routing Strategy
//
//   - Catalog: /books, /books/{identifier}
//   - Reader: /books/{identifier}/pages/{number}
//   - Favorites: /favorites, POST /books/{identifier}/favorite
//   - Home: /home
func (handler *Handler) RegisterRoutes(api chi.Router) {
	api.Get("/home", handler.home)

	api.Route("/books", func(books chi.Router) {
		books.Get("/", handler.listBooks)
		books.Get("/{identifier}", handler.getBook)
		books.Get("/{identifier}/pages/{number}", handler.readPage)
		books.Post("/{identifier}/favorite", handler.toggleFavorite)
	})

	api.Get("/favorites", handler.listFavorites)
}

// # Catalog Endpoints

/*
GET /api/v1/books.

Description: Retrieves a page of the catalog in catalog order.

Request:
  - page: int
  - limit: int

Response:
  - 200: []Book: Paginated list with meta
*/
func (handler *Handler) listBooks(writer http.ResponseWriter, request *http.Request) {
	paginationParams := pagination.FromRequest(request)

	books, total := handler.service.ListBooks(request.Context(), paginationParams.Limit, paginationParams.Offset())

	respond.Paginated(writer, books, pagination.NewMeta(paginationParams.Page, paginationParams.Limit, total))
}

/*
GET /api/v1/books/{identifier}.

Request:
  - identifier: string (ID or Slug)

Response:
  - 200: Book
  - 404: NOT_FOUND
*/
func (handler *Handler) getBook(writer http.ResponseWriter, request *http.Request) {
	found, err := handler.service.GetBook(request.Context(), requestutil.ID(request, "identifier"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, found)
}

// # Reader Endpoints

/*
GET /api/v1/books/{identifier}/pages/{number}.

Description: Returns one page plus its position, so the client can render
"N of M", the progress bar and the previous/next controls.

Request:
  - identifier: string (ID or Slug)
  - number: int (1-indexed)

Response:
  - 200: Reading
  - 400: VALIDATION_ERROR: number is not an integer or is out of range
  - 404: NOT_FOUND
*/
func (handler *Handler) readPage(writer http.ResponseWriter, request *http.Request) {
	number, ok := requestutil.IntParam(request, "number")
	if !ok {
		respond.Error(writer, request, apperr.ValidationError("Validation failed", apperr.FieldError{
			Field:   FieldPageNumber,
			Message: "Must be an integer",
		}))
		return
	}

	reading, err := handler.service.ReadPage(request.Context(), requestutil.ID(request, "identifier"), number)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, reading)
}

// # Favorites Endpoints

/*
GET /api/v1/favorites.

Response:
  - 200: {items: []Book, total: int} in favorited order
*/
func (handler *Handler) listFavorites(writer http.ResponseWriter, request *http.Request) {
	favorites := handler.service.Favorites(request.Context())

	respond.OK(writer, map[string]any{
		FieldItems: favorites,
		FieldTotal: len(favorites),
	})
}

/*
POST /api/v1/books/{identifier}/favorite.

Description: Toggles the favorite flag. Subscribers of the change feed are
notified before the response is written.

Request:
  - identifier: string (Catalog id; slugs are not accepted for mutations)

Response:
  - 200: Book: The updated book
  - 404: NOT_FOUND: Unknown id; nothing changed
*/
func (handler *Handler) toggleFavorite(writer http.ResponseWriter, request *http.Request) {
	updated, err := handler.service.ToggleFavorite(request.Context(), requestutil.ID(request, "identifier"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, updated)
}

// # Home Endpoint

/*
GET /api/v1/home.

Response:
  - 200: Summary
*/
func (handler *Handler) home(writer http.ResponseWriter, request *http.Request) {
	respond.OK(writer, handler.service.Home(request.Context()))
}
