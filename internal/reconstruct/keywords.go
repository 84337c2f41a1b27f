package reconstruct

// Static keyword/symbol tables used by the item-candidate skip filter. Kept
// as plain data so they can be extended and tested apart from the parsing
// logic. The denylist is deliberately broad: mis-parsing boilerplate as a
// purchased item is worse than missing a real item.

// skipSymbols are characters that do not occur in legitimate receipt item
// lines and usually indicate OCR garbage.
const skipSymbols = "<>{}[]\\|~`"

// skipKeywords marks lines that are receipt boilerplate, not purchases:
// totals and tax lines, payment-method noise, register/cashier metadata and
// card-terminal jargon. Matched case-insensitively as substrings.
var skipKeywords = []string{
	// totals and tax
	"subtotal",
	"sub total",
	"total",
	"tax",
	"hst",
	"gst",
	"pst",
	"qst",
	// payment methods and tender
	"cash",
	"change",
	"credit",
	"debit",
	"visa",
	"mastercard",
	"amex",
	"interac",
	"card",
	"payment",
	"tender",
	"balance",
	"amount due",
	"refund",
	"void",
	// register / cashier metadata
	"register",
	"cashier",
	"clerk",
	"store #",
	"order #",
	"trans #",
	"invoice",
	"receipt",
	// card terminal / EMV jargon
	"approved",
	"auth code",
	"terminal",
	"merchant",
	"emv",
	"aid:",
	"tvr:",
	"tsi:",
	"chip",
	"contactless",
	// footer courtesy text and contact info
	"thank you",
	"have a",
	"welcome",
	"survey",
	"tel:",
	"phone",
	"fax",
	"www.",
	"http",
}

// metadataPrefixes guard the description-plus-bare-price multi-line matcher:
// a line starting with one of these is receipt metadata, and pairing it with
// the following price line would fabricate an item.
var metadataPrefixes = []string{
	"date",
	"time",
	"order",
	"register",
	"store",
	"phone",
	"tel",
	"address",
	"unit",
	"street",
	"thank",
	"customer",
}
