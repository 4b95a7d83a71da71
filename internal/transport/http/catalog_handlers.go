package http

import (
	"encoding/json"
	"net/http"

	"fooddelivery/internal/authz"
	"fooddelivery/internal/dto"
	"fooddelivery/internal/service"

	"github.com/go-chi/chi/v5"
)

type catalogHandler struct {
	catalog service.CatalogService
}

func (h *catalogHandler) createCategory(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateCategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Bad request")
		return
	}
	cat, err := h.catalog.CreateCategory(r.Context(), req)
	if err != nil {
		writeCatalogError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, cat)
}

func (h *catalogHandler) listCategories(w http.ResponseWriter, r *http.Request) {
	cats, err := h.catalog.ListCategories(r.Context())
	if err != nil {
		writeCatalogError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, cats)
}

func (h *catalogHandler) updateCategory(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateCategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Bad request")
		return
	}
	cat, err := h.catalog.UpdateCategory(r.Context(), chi.URLParam(r, "id"), req.Name)
	if err != nil {
		writeCatalogError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, cat)
}

func (h *catalogHandler) deleteCategory(w http.ResponseWriter, r *http.Request) {
	if err := h.catalog.DeleteCategory(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeCatalogError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *catalogHandler) createFood(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateFoodRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Bad request")
		return
	}
	f, err := h.catalog.CreateFood(r.Context(), req)
	if err != nil {
		writeCatalogError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, f)
}

func (h *catalogHandler) getFood(w http.ResponseWriter, r *http.Request) {
	f, err := h.catalog.GetFood(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeCatalogError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, f)
}

func (h *catalogHandler) listFoods(w http.ResponseWriter, r *http.Request) {
	foods, err := h.catalog.ListFoods(r.Context())
	if err != nil {
		writeCatalogError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, foods)
}

func (h *catalogHandler) listFoodsByCategory(w http.ResponseWriter, r *http.Request) {
	foods, err := h.catalog.ListFoodsByCategory(r.Context(), chi.URLParam(r, "categoryId"))
	if err != nil {
		writeCatalogError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, foods)
}

func (h *catalogHandler) updateFood(w http.ResponseWriter, r *http.Request) {
	var req dto.UpdateFoodRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Bad request")
		return
	}
	f, err := h.catalog.UpdateFood(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		writeCatalogError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, f)
}

func (h *catalogHandler) deleteFood(w http.ResponseWriter, r *http.Request) {
	if err := h.catalog.DeleteFood(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeCatalogError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type orderHandler struct {
	orders service.OrderService
}

func (h *orderHandler) createOrder(w http.ResponseWriter, r *http.Request) {
	p, ok := authz.PrincipalFrom(r.Context())
	if !ok {
		writeMessage(w, http.StatusUnauthorized, "Authentication required")
		return
	}
	var req dto.CreateOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Bad request")
		return
	}
	order, err := h.orders.CreateOrder(r.Context(), p.UserID, req)
	if err != nil {
		writeCatalogError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, order)
}

func (h *orderHandler) listMyOrders(w http.ResponseWriter, r *http.Request) {
	p, ok := authz.PrincipalFrom(r.Context())
	if !ok {
		writeMessage(w, http.StatusUnauthorized, "Authentication required")
		return
	}
	orders, err := h.orders.ListOrdersByUser(r.Context(), p.UserID)
	if err != nil {
		writeCatalogError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, orders)
}

func (h *orderHandler) listAllOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.orders.ListAllOrders(r.Context())
	if err != nil {
		writeCatalogError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, orders)
}

func (h *orderHandler) updateOrderStatus(w http.ResponseWriter, r *http.Request) {
	var req dto.UpdateOrderStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Bad request")
		return
	}
	order, err := h.orders.UpdateOrderStatus(r.Context(), chi.URLParam(r, "id"), req.Status)
	if err != nil {
		writeCatalogError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, order)
}
