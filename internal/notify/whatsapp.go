package notify

import (
	"fmt"
	"net/url"
	"strings"
)

// OwnerAlertLink builds a wa.me deep link pre-filled with the booking
// summary. Pure string construction: the UI presents the link and a
// human decides whether to send, so this channel cannot fail.
func OwnerAlertLink(ownerPhone string, notice BookingNotice) string {
	return "https://wa.me/" + ownerPhone + "?text=" + url.QueryEscape(FormatAlertMessage(notice))
}

func FormatAlertMessage(n BookingNotice) string {
	var b strings.Builder

	b.WriteString("🚗 *Booking Alert* 🚗\n")
	b.WriteString("--------------------------------\n")
	fmt.Fprintf(&b, "*Ref ID:* %s\n", n.ReferenceID)
	b.WriteString("*Status:* Confirmed ✅\n\n")
	fmt.Fprintf(&b, "*Vehicle:* %s\n", n.VehicleName)
	fmt.Fprintf(&b, "*Dates:* %s to %s\n", n.StartDate.Format("02 Jan 2006"), n.EndDate.Format("02 Jan 2006"))
	fmt.Fprintf(&b, "*Pickup:* %s\n\n", n.PickupLocation)
	fmt.Fprintf(&b, "*Customer:* %s\n", n.CustomerName)
	fmt.Fprintf(&b, "*Phone:* %s\n", n.CustomerPhone)
	fmt.Fprintf(&b, "*Total:* %s\n", n.TotalCost.Display())
	fmt.Fprintf(&b, "*Advance:* %s\n", n.Advance.Display())
	b.WriteString("--------------------------------\n")
	b.WriteString("🔴 *Action:* Verify documents & handover keys.")

	return b.String()
}
