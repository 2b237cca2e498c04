package email

import "fmt"

// Subjects for the notification emails.
const (
	SubjectWelcome        = "Welcome to DE BLISS - Your culinary journey begins!"
	SubjectResetCode      = "Reset Password Code"
	SubjectOrderConfirmed = "Order Confirmed - DE BLISS is preparing your meal!"
	SubjectOutForDelivery = "Your Order is Out for Delivery - DE BLISS"
)

const wrapper = `<!DOCTYPE html>
<html>
<head>
  <style>
    body { font-family: Arial, sans-serif; background-color: #f4f4f4; margin: 0; padding: 20px; }
    .container { max-width: 600px; margin: 0 auto; background-color: white; border-radius: 10px; overflow: hidden; }
    .header { background: linear-gradient(135deg, #ff1200, #ff4000); color: white; padding: 30px; text-align: center; }
    .content { padding: 30px; color: #666; line-height: 1.6; }
    .footer { background-color: #333; color: white; text-align: center; padding: 20px; font-size: 14px; }
  </style>
</head>
<body>
  <div class="container">
    <div class="header"><h1>%s</h1></div>
    <div class="content">%s</div>
    <div class="footer"><p><strong>DE BLISS Restaurant</strong></p><p>Serving love in every dish</p></div>
  </div>
</body>
</html>`

// WelcomeBody greets a freshly signed-up user.
func WelcomeBody(name string) string {
	content := fmt.Sprintf(`<h2>Hello %s!</h2>
<p>Welcome to the DE BLISS family! You can now browse our menu, place orders
for delivery or pickup, and make table reservations for special occasions.</p>
<p>Thank you for choosing DE BLISS. We can't wait to serve you!</p>`, name)
	return fmt.Sprintf(wrapper, "Welcome to DE BLISS!", content)
}

// ResetCodeBody carries the 6-digit password reset code.
func ResetCodeBody(name, code string) string {
	content := fmt.Sprintf(`<p>Hello %s,</p>
<p>Your password reset code is: <strong>%s</strong></p>
<p>This code will expire in 1 hour.</p>
<p>If you did not request a password reset, please ignore this email.</p>`, name, code)
	return fmt.Sprintf(wrapper, "Password Reset", content)
}

// OrderConfirmedBody notifies the customer that the kitchen accepted the order.
func OrderConfirmedBody(name string, orderID uint, deliveryMethod, address string) string {
	where := "You can pick it up at our restaurant"
	if deliveryMethod == "delivery" {
		where = fmt.Sprintf("Our rider will deliver it to %s", orFallback(address, "your location"))
	}
	content := fmt.Sprintf(`<h2>Hello %s!</h2>
<p>Great news! Your order has been confirmed and our kitchen team is now preparing your meal.</p>
<p><strong>Order ID:</strong> %d</p>
<p><strong>Delivery method:</strong> %s</p>
<p>%s.</p>`, name, orderID, deliveryMethod, where)
	return fmt.Sprintf(wrapper, "Order Confirmed!", content)
}

// OutForDeliveryBody notifies the customer that a rider is on the way.
func OutForDeliveryBody(name string, orderID uint, address string) string {
	content := fmt.Sprintf(`<h2>Hello %s!</h2>
<p>Your order is out for delivery.</p>
<p><strong>Order ID:</strong> %d</p>
<p><strong>Delivery address:</strong> %s</p>`, name, orderID, orFallback(address, "Your specified location"))
	return fmt.Sprintf(wrapper, "Out for Delivery", content)
}

func orFallback(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
