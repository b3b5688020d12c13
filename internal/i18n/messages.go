package i18n

// messages holds the built-in translation tables.
var messages = map[string]map[string]string{
	"en": {
		"tab.dashboard":     "Dashboard",
		"tab.receipts":      "Receipts",
		"tab.new":           "New",
		"tab.budgets":       "Budgets",
		"tab.analytics":     "Analytics",
		"tab.settings":      "Settings",
		"tab.profile":       "Profile",
		"tab.notifications": "Alerts",

		"login.title":    "Sign in to pantry",
		"login.email":    "Email",
		"login.password": "Password",
		"login.submit":   "Sign in",
		"login.failed":   "Sign in failed",

		"dashboard.total_spent":   "Total Spent",
		"dashboard.receipts":      "Receipts",
		"dashboard.average":       "Avg Receipt",
		"dashboard.recent":        "Recent Receipts",
		"dashboard.budgets":       "Budgets",
		"dashboard.vs_last_month": "vs last month",

		"receipts.store":          "Store",
		"receipts.date":           "Date",
		"receipts.total":          "Total",
		"receipts.status":         "Status",
		"receipts.items":          "Items",
		"receipts.empty":          "No receipts match the current filters.",
		"receipts.filter_store":   "Filter by store",
		"receipts.confirm_delete": "Delete this receipt? (y/n)",

		"wizard.step_basic":         "Basic Info",
		"wizard.step_items":         "Items",
		"wizard.step_review":        "Review",
		"wizard.store_name":         "Store name",
		"wizard.purchase_date":      "Purchase date",
		"wizard.item_name":          "Item",
		"wizard.quantity":           "Qty",
		"wizard.unit_price":         "Unit price",
		"wizard.category":           "Category",
		"wizard.total":              "Total",
		"wizard.submit":             "Save receipt",
		"wizard.success":            "Receipt saved",
		"wizard.err_store_required": "Store name is required",
		"wizard.err_date_required":  "Purchase date is required",
		"wizard.err_no_items":       "Add at least one item",

		"budgets.spent":          "spent",
		"budgets.remaining":      "remaining",
		"budgets.empty":          "No budgets yet.",
		"budgets.new":            "New budget",
		"budgets.confirm_delete": "Delete this budget? (y/n)",

		"analytics.monthly":    "Monthly Spending",
		"analytics.categories": "Top Categories",
		"analytics.daily":      "Last 30 Days",
		"analytics.budgets":    "Budget Utilization",

		"settings.theme":    "Theme",
		"settings.language": "Language",
		"settings.currency": "Currency",
		"settings.server":   "Server",
		"settings.saved":    "Saved",

		"profile.member_since": "Member since",

		"notifications.empty":    "Nothing needs your attention.",
		"notifications.budget":   "Budget alert",
		"notifications.receipt":  "Receipt failed",

		"common.loading": "Loading",
		"common.dismiss": "dismiss",
		"common.back":    "back",
		"common.next":    "next",
	},

	"es": {
		"tab.dashboard":     "Panel",
		"tab.receipts":      "Recibos",
		"tab.new":           "Nuevo",
		"tab.budgets":       "Presupuestos",
		"tab.analytics":     "Análisis",
		"tab.settings":      "Ajustes",
		"tab.profile":       "Perfil",
		"tab.notifications": "Avisos",

		"login.title":    "Inicia sesión en pantry",
		"login.email":    "Correo",
		"login.password": "Contraseña",
		"login.submit":   "Entrar",
		"login.failed":   "Error al iniciar sesión",

		"dashboard.total_spent":   "Gasto Total",
		"dashboard.receipts":      "Recibos",
		"dashboard.average":       "Recibo Medio",
		"dashboard.recent":        "Recibos Recientes",
		"dashboard.budgets":       "Presupuestos",
		"dashboard.vs_last_month": "vs mes anterior",

		"receipts.store":          "Tienda",
		"receipts.date":           "Fecha",
		"receipts.total":          "Total",
		"receipts.status":         "Estado",
		"receipts.items":          "Artículos",
		"receipts.empty":          "Ningún recibo coincide con los filtros.",
		"receipts.filter_store":   "Filtrar por tienda",
		"receipts.confirm_delete": "¿Eliminar este recibo? (y/n)",

		"wizard.step_basic":         "Datos",
		"wizard.step_items":         "Artículos",
		"wizard.step_review":        "Revisar",
		"wizard.store_name":         "Tienda",
		"wizard.purchase_date":      "Fecha de compra",
		"wizard.item_name":          "Artículo",
		"wizard.quantity":           "Cant",
		"wizard.unit_price":         "Precio unit.",
		"wizard.category":           "Categoría",
		"wizard.total":              "Total",
		"wizard.submit":             "Guardar recibo",
		"wizard.success":            "Recibo guardado",
		"wizard.err_store_required": "La tienda es obligatoria",
		"wizard.err_date_required":  "La fecha de compra es obligatoria",
		"wizard.err_no_items":       "Añade al menos un artículo",

		"budgets.spent":          "gastado",
		"budgets.remaining":      "restante",
		"budgets.empty":          "Aún no hay presupuestos.",
		"budgets.new":            "Nuevo presupuesto",
		"budgets.confirm_delete": "¿Eliminar este presupuesto? (y/n)",

		"analytics.monthly":    "Gasto Mensual",
		"analytics.categories": "Categorías Principales",
		"analytics.daily":      "Últimos 30 Días",
		"analytics.budgets":    "Uso del Presupuesto",

		"settings.theme":    "Tema",
		"settings.language": "Idioma",
		"settings.currency": "Moneda",
		"settings.server":   "Servidor",
		"settings.saved":    "Guardado",

		"profile.member_since": "Miembro desde",

		"notifications.empty":    "Nada requiere tu atención.",
		"notifications.budget":   "Alerta de presupuesto",
		"notifications.receipt":  "Recibo fallido",

		"common.loading": "Cargando",
		"common.dismiss": "descartar",
		"common.back":    "atrás",
		"common.next":    "siguiente",
	},
}
