package conversation

import (
	"fmt"
	"strings"

	"github.com/panesgr/chatbot-backend/internal/customers"
	"github.com/panesgr/chatbot-backend/internal/stores"
)

func menuText() string {
	return strings.Join([]string{
		"🏠 *PANES.GR — Κεντρικό μενού*",
		"",
		"1. 🔍 Αναζήτηση προϊόντος",
		"2. ⭐ Δημοφιλή προϊόντα",
		"3. 🏷️ Προσφορές",
		"4. 📂 Κατηγορίες",
		"5. 🔄 Συνδρομή παραλαβής (-10%)",
		"6. 👤 Ο λογαριασμός μου",
		"7. 📍 Τοποθεσία & ωράριο",
		"8. 💬 Εξυπηρέτηση πελατών",
		"9. 🏪 Επιλογή καταστήματος",
		"10. 🤝 Franchise",
		"11. 📦 Χονδρική",
		"",
		"Στείλτε τον αριθμό της επιλογής σας.",
	}, "\n")
}

func helpText() string {
	return strings.Join([]string{
		"ℹ️ *Διαθέσιμες εντολές:*",
		"",
		"«μενού» — επιστροφή στο κεντρικό μενού",
		"«καταστήματα» — αλλαγή καταστήματος παραλαβής",
		"«τοποθεσία» — διεύθυνση και ωράριο",
		"«βοηθός» — συνομιλία με τον ψηφιακό βοηθό",
		"«franchise» / «χονδρική» — πληροφορίες συνεργασίας",
	}, "\n")
}

func locationText(c *customers.Customer) string {
	store, ok := stores.ByID(c.StoreID)
	if !ok {
		store = stores.Default()
	}
	lines := []string{
		"📍 *" + store.Name + "*",
		store.Address,
		store.MapLink,
		"",
		"🕘 Καθημερινές: " + store.Hours.Weekdays,
		"🕘 Σάββατο: " + store.Hours.Saturday,
		"🕘 Κυριακή: " + store.Hours.Sunday,
		"☎️ " + store.Phone,
	}
	if store.DriveThrough {
		lines = append(lines, "🚗 Διαθέσιμη drive-through παραλαβή")
	}
	return strings.Join(lines, "\n")
}

func storeName(id string) string {
	if store, ok := stores.ByID(id); ok {
		return store.Name
	}
	return stores.Default().Name
}

func storeSelectionText() string {
	var b strings.Builder
	b.WriteString("🏪 *Επιλέξτε κατάστημα παραλαβής:*\n\n")
	for i, store := range stores.All() {
		fmt.Fprintf(&b, "%d. %s — %s\n", i+1, store.Name, store.Address)
	}
	b.WriteString("\nΣτείλτε τον αριθμό του καταστήματος.")
	return b.String()
}

func franchiseIntroText() string {
	return strings.Join([]string{
		"🤝 *Γίνετε συνεργάτης PANES.GR*",
		"",
		"Το δίκτυό μας μεγαλώνει! Αναζητούμε συνεργάτες για νέα καταστήματα",
		"σε όλη την Ελλάδα, με χαμηλό αρχικό κόστος και πλήρη υποστήριξη.",
		"",
		"Για να επικοινωνήσουμε μαζί σας, στείλτε μας το ονοματεπώνυμό σας:",
	}, "\n")
}

func wholesaleIntroText() string {
	return strings.Join([]string{
		"📦 *Χονδρική πώληση*",
		"",
		"Προσφέρουμε έκπτωση 20% σε επιλεγμένα προϊόντα για επαγγελματίες.",
		"Τι είδους επιχείρηση έχετε;",
		"",
		"1. Παιδικός σταθμός",
		"2. Ξενοδοχείο",
		"3. Κατάστημα λιανικής",
		"4. Άλλο",
	}, "\n")
}

func invalidChoiceText(max int) string {
	return fmt.Sprintf("Μη έγκυρη επιλογή. Στείλτε έναν αριθμό από 1 έως %d, ή «μενού» για το κεντρικό μενού.", max)
}
