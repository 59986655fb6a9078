package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/sumitroy01/Donate-v2/internal/payment"
	"github.com/sumitroy01/Donate-v2/internal/pkg/errcode"
	"github.com/sumitroy01/Donate-v2/internal/pkg/response"
	"github.com/sumitroy01/Donate-v2/internal/service"
)

type DonationHandler struct {
	donations   *service.DonationService
	redirectURL string
}

func NewDonationHandler(donations *service.DonationService, redirectURL string) *DonationHandler {
	return &DonationHandler{donations: donations, redirectURL: redirectURL}
}

type orderRequest struct {
	ProfileID string  `json:"profile_id"`
	Amount    float64 `json:"amount"`
}

func (h *DonationHandler) CreateOrder(c *gin.Context) {
	var req orderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, errcode.ErrInvalid, "invalid request")
		return
	}
	result, err := h.donations.CreateOrder(c.Request.Context(), req.ProfileID, req.Amount)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, result)
}

type callbackRequest struct {
	OrderID   string `form:"razorpay_order_id" json:"razorpay_order_id"`
	PaymentID string `form:"razorpay_payment_id" json:"razorpay_payment_id"`
	Signature string `form:"razorpay_signature" json:"razorpay_signature"`
	ProfileID string `form:"profileId" json:"profileId"`
	Amount    string `form:"amount" json:"amount"`
}

// VerifyPayment is the gateway callback. The caller is a redirected browser
// mid-checkout, so every outcome resolves to the same redirect; rejection and
// acceptance are only distinguishable in the logs.
func (h *DonationHandler) VerifyPayment(c *gin.Context) {
	var req callbackRequest
	if err := c.ShouldBind(&req); err != nil {
		logutil.GetLogger(c.Request.Context()).Warn("unreadable payment callback", zap.Error(err))
		c.Redirect(http.StatusFound, h.redirectURL)
		return
	}
	amount, _ := strconv.ParseFloat(req.Amount, 64)
	cb := payment.Callback{
		OrderID:   req.OrderID,
		PaymentID: req.PaymentID,
		Signature: req.Signature,
		ProfileID: req.ProfileID,
		Amount:    amount,
	}
	if err := h.donations.HandleCallback(c.Request.Context(), cb); err != nil {
		logutil.GetLogger(c.Request.Context()).Error("payment callback processing failed",
			zap.String("order_id", cb.OrderID), zap.Error(err))
	}
	c.Redirect(http.StatusFound, h.redirectURL)
}
