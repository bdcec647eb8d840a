package admin

import (
	"net/http"

	"github.com/pompadepo/pompa-market/app/helpers"
	"github.com/pompadepo/pompa-market/app/utils/breadcrumb"
)

func (h *AdminHandler) GetDashboardPage(w http.ResponseWriter, r *http.Request) {
	stats := h.catalogSvc.DashboardStats(r.Context())

	data := helpers.GetBaseData(r, map[string]interface{}{
		"Title":            "Yönetim Paneli",
		"TotalProducts":    stats.TotalProducts,
		"ActiveProducts":   stats.ActiveProducts,
		"TotalCategories":  stats.TotalCategories,
		"TotalCollections": stats.TotalCollections,
		"RecentProducts":   stats.RecentProducts,
		"LowStock":         stats.LowStock,
		"Breadcrumbs": []breadcrumb.Breadcrumb{
			{Name: "Anasayfa", URL: "/"},
			{Name: "Yönetim", URL: "/admin/dashboard"},
		},
	})

	_ = h.render.HTML(w, http.StatusOK, "admin/dashboard", data)
}
