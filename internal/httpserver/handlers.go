package httpserver

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront/internal/domain"
	"storefront/internal/session"
)

type handlers struct {
	products productService
	carts    cartService
	checkout checkoutService
	sessions session.Store
	logger   *log.Logger
}

// sessionCart returns the cart id bound to the request's session, or nil.
func (h *handlers) sessionCart(c *gin.Context) (*string, error) {
	id, ok, err := h.sessions.CartID(c.Request.Context(), session.ID(c))
	if err != nil || !ok {
		return nil, err
	}
	return &id, nil
}

// forgetCart drops a session's cart id once the cart no longer resolves.
func (h *handlers) forgetCart(c *gin.Context) {
	if err := h.sessions.Clear(c.Request.Context(), session.ID(c)); err != nil {
		h.logger.Printf("clear session cart: %v", err)
	}
}

func (h *handlers) listProducts(c *gin.Context) {
	products, err := h.products.List(c.Request.Context())
	if err != nil {
		h.writeError(c, err)
		return
	}
	cartID, err := h.sessionCart(c)
	if err != nil {
		h.writeError(c, err)
		return
	}
	count, err := h.carts.CountItems(c.Request.Context(), cartID)
	if err != nil {
		h.writeError(c, err)
		return
	}
	if products == nil {
		products = []domain.Product{}
	}
	c.JSON(http.StatusOK, gin.H{"products": products, "cart_items": count})
}

func (h *handlers) getProduct(c *gin.Context) {
	p, err := h.products.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *handlers) viewCart(c *gin.Context) {
	cartID, err := h.sessionCart(c)
	if err != nil {
		h.writeError(c, err)
		return
	}
	if cartID == nil {
		c.JSON(http.StatusOK, toCartResponse(nil))
		return
	}
	cart, _, err := h.carts.GetOrCreate(c.Request.Context(), cartID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			h.forgetCart(c)
		}
		h.writeError(c, err)
		return
	}
	items, err := h.carts.ListItems(c.Request.Context(), cart.ID)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toCartResponse(items))
}

func (h *handlers) addToCart(c *gin.Context) {
	ctx := c.Request.Context()
	productID := c.Param("productID")
	if _, err := h.products.Get(ctx, productID); err != nil {
		h.writeError(c, err)
		return
	}

	cartID, err := h.sessionCart(c)
	if err != nil {
		h.writeError(c, err)
		return
	}
	cart, created, err := h.carts.GetOrCreate(ctx, cartID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			h.forgetCart(c)
		}
		h.writeError(c, err)
		return
	}
	if created {
		if err := h.sessions.SetCartID(ctx, session.ID(c), cart.ID); err != nil {
			h.writeError(c, err)
			return
		}
	}

	if _, err := h.carts.AddItem(ctx, cart.ID, productID); err != nil {
		h.writeError(c, err)
		return
	}
	count, err := h.carts.CountItems(ctx, &cart.ID)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"cart_items": count})
}

func (h *handlers) removeFromCart(c *gin.Context) {
	if err := h.carts.RemoveItem(c.Request.Context(), c.Param("itemID")); err != nil {
		h.writeError(c, err)
		return
	}
	c.Redirect(http.StatusSeeOther, "/cart")
}

func (h *handlers) startCheckout(c *gin.Context) {
	cartID, err := h.sessionCart(c)
	if err != nil {
		h.writeError(c, err)
		return
	}
	res, err := h.checkout.Checkout(c.Request.Context(), cartID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			h.forgetCart(c)
		}
		h.writeError(c, err)
		return
	}
	if res.NoOp {
		c.Redirect(http.StatusSeeOther, "/products")
		return
	}
	c.Redirect(http.StatusSeeOther, res.RedirectURL)
}

func (h *handlers) paymentSuccess(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "success", "message": "Payment received. Thank you for your order."})
}

func (h *handlers) paymentCancel(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "cancelled", "message": "Payment was cancelled. Your cart is still available."})
}

func (h *handlers) getOrderGroup(c *gin.Context) {
	group, err := h.checkout.OrderGroup(c.Request.Context(), c.Param("reference"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, group)
}

func (h *handlers) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, domain.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrGatewayTimeout):
		h.logger.Printf("%s %s: %v", c.Request.Method, c.Request.URL.Path, err)
		c.JSON(http.StatusGatewayTimeout, gin.H{"error": "payment provider timed out"})
	case errors.Is(err, domain.ErrGateway):
		h.logger.Printf("%s %s: %v", c.Request.Method, c.Request.URL.Path, err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "payment provider unavailable"})
	default:
		h.logger.Printf("%s %s: %v", c.Request.Method, c.Request.URL.Path, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
