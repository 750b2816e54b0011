package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// formSchema returns the blank create form for an entity, or the seeded
// edit form when ?id= is given
func (h *Handlers) formSchema(c *gin.Context) {
	id := c.Query("id")

	switch c.Param("entity") {
	case "employees":
		if id == "" {
			form := h.Employees.NewEmployeeForm()
			ok(c, gin.H{"schema": form.Schema(), "draft": form.Draft()})
			return
		}
		n, valid := parseID(c, "id", id)
		if !valid {
			return
		}
		form, err := h.Employees.EditEmployeeForm(n)
		if err != nil {
			fail(c, err)
			return
		}
		ok(c, gin.H{"schema": form.Schema(), "draft": form.Draft()})

	case "products":
		if id == "" {
			form := h.Products.NewProductForm()
			ok(c, gin.H{"schema": form.Schema(), "draft": form.Draft()})
			return
		}
		n, valid := parseID(c, "id", id)
		if !valid {
			return
		}
		form, err := h.Products.EditProductForm(n)
		if err != nil {
			fail(c, err)
			return
		}
		ok(c, gin.H{"schema": form.Schema(), "draft": form.Draft()})

	default:
		c.AbortWithStatusJSON(http.StatusNotFound, Response{Type: "error", Message: "Unknown form " + c.Param("entity")})
	}
}

// Employees

func (h *Handlers) listEmployees(c *gin.Context) {
	ok(c, h.Employees.GetEmployees(query(c)))
}

func (h *Handlers) getEmployee(c *gin.Context) {
	id, valid := intParam(c, "id")
	if !valid {
		return
	}
	e, err := h.Employees.GetEmployee(id)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, e)
}

func (h *Handlers) createEmployee(c *gin.Context) {
	values, valid := bindValues(c)
	if !valid {
		return
	}
	e, outcome, err := h.Employees.CreateEmployee(values)
	if err != nil {
		fail(c, err)
		return
	}
	done(c, http.StatusCreated, e, outcome)
}

func (h *Handlers) updateEmployee(c *gin.Context) {
	id, valid := intParam(c, "id")
	if !valid {
		return
	}
	values, valid := bindValues(c)
	if !valid {
		return
	}
	e, outcome, err := h.Employees.UpdateEmployee(id, values)
	if err != nil {
		fail(c, err)
		return
	}
	done(c, http.StatusOK, e, outcome)
}

func (h *Handlers) deleteEmployee(c *gin.Context) {
	id, valid := intParam(c, "id")
	if !valid {
		return
	}
	e, outcome, err := h.Employees.DeleteEmployee(id)
	if err != nil {
		fail(c, err)
		return
	}
	done(c, http.StatusOK, e, outcome)
}

// Products

func (h *Handlers) listProducts(c *gin.Context) {
	ok(c, h.Products.GetProducts(query(c)))
}

func (h *Handlers) getProduct(c *gin.Context) {
	id, valid := intParam(c, "id")
	if !valid {
		return
	}
	p, err := h.Products.GetProduct(id)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, p)
}

func (h *Handlers) createProduct(c *gin.Context) {
	values, valid := bindValues(c)
	if !valid {
		return
	}
	p, outcome, err := h.Products.CreateProduct(values)
	if err != nil {
		fail(c, err)
		return
	}
	done(c, http.StatusCreated, p, outcome)
}

func (h *Handlers) updateProduct(c *gin.Context) {
	id, valid := intParam(c, "id")
	if !valid {
		return
	}
	values, valid := bindValues(c)
	if !valid {
		return
	}
	p, outcome, err := h.Products.UpdateProduct(id, values)
	if err != nil {
		fail(c, err)
		return
	}
	done(c, http.StatusOK, p, outcome)
}

func (h *Handlers) deleteProduct(c *gin.Context) {
	id, valid := intParam(c, "id")
	if !valid {
		return
	}
	p, outcome, err := h.Products.DeleteProduct(id)
	if err != nil {
		fail(c, err)
		return
	}
	done(c, http.StatusOK, p, outcome)
}
