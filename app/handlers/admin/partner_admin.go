package admin

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/gsk-limited/storefront/app/services"
	"github.com/gsk-limited/storefront/app/utils/respond"
)

func (h *AdminHandler) ListPartners(w http.ResponseWriter, r *http.Request) {
	partners, err := h.partners.GetPartners(r.Context())
	if err != nil {
		respond.Error(h.render, w, "AdminHandler.ListPartners", err)
		return
	}
	_ = h.render.JSON(w, http.StatusOK, map[string]interface{}{"partners": partners})
}

func (h *AdminHandler) GetPartner(w http.ResponseWriter, r *http.Request) {
	partner, err := h.partners.GetPartner(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		respond.Error(h.render, w, "AdminHandler.GetPartner", err)
		return
	}
	_ = h.render.JSON(w, http.StatusOK, partner)
}

func (h *AdminHandler) CreatePartner(w http.ResponseWriter, r *http.Request) {
	if err := parseForm(r); err != nil {
		respond.Error(h.render, w, "AdminHandler.CreatePartner", err)
		return
	}
	partner, err := h.partners.CreatePartner(r.Context(), services.PartnerInput{
		Name: r.FormValue("name"),
		Logo: formFile(r, "logo"),
	})
	if err != nil {
		respond.Error(h.render, w, "AdminHandler.CreatePartner", err)
		return
	}
	_ = h.render.JSON(w, http.StatusCreated, partner)
}

func (h *AdminHandler) UpdatePartner(w http.ResponseWriter, r *http.Request) {
	if err := parseForm(r); err != nil {
		respond.Error(h.render, w, "AdminHandler.UpdatePartner", err)
		return
	}
	partner, err := h.partners.UpdatePartner(r.Context(), mux.Vars(r)["id"], services.PartnerInput{
		Name: r.FormValue("name"),
		Logo: formFile(r, "logo"),
	})
	if err != nil {
		respond.Error(h.render, w, "AdminHandler.UpdatePartner", err)
		return
	}
	_ = h.render.JSON(w, http.StatusOK, partner)
}

func (h *AdminHandler) DeletePartner(w http.ResponseWriter, r *http.Request) {
	if err := h.partners.DeletePartner(r.Context(), mux.Vars(r)["id"]); err != nil {
		respond.Error(h.render, w, "AdminHandler.DeletePartner", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
