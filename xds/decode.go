package xds

import "fmt"

// class/type byte1 values, per the CEA-608 XDS class table. byte1's low
// nibble selects the service class (current/future program, channel,
// misc) and the value itself (1 or 2) selects current vs future within
// "program" class; byte2 of the first pair in a gathered packet selects
// the type within that class.
const (
	class1 = 0x01 // current program
	class2 = 0x02 // future program
	class5 = 0x05 // channel
	class7 = 0x07 // miscellaneous
	class9 = 0x09 // public service (weather)
)

func describe(pkt [][2]uint8) (string, error) {
	if len(pkt) == 0 {
		return "", &ErrShortPacket{Got: 0, Want: 1}
	}
	class := int(pkt[0][0])
	typ := int(pkt[0][1])
	data := pkt // class and type live in pkt[0]; every decoder reads its payload from pkt[1:]

	switch class {
	case class1, class2:
		return describeProgram(class, typ, data)
	case class5:
		return describeChannel(typ, data)
	case class7:
		return describeMisc(typ, data)
	case class9:
		return describeWeather(typ, data)
	default:
		return fmt.Sprintf("XDS class %#x type %#x (%d pairs)", class, typ, len(pkt)), nil
	}
}

func need(class, typ, got, want int) error {
	if got < want {
		return &ErrShortPacket{Class: class, Type: typ, Got: got, Want: want}
	}
	return nil
}

func describeProgram(class, typ int, pkt [][2]uint8) (string, error) {
	switch typ {
	case 0x01: // program ID / scheduled start time
		if err := need(class, typ, len(pkt), 3); err != nil {
			return "", err
		}
		minute := pkt[1][0] & 0x3F
		hour := pkt[1][1] & 0x1F
		day := pkt[2][0] & 0x1F
		month := pkt[2][1] & 0x0F
		s := fmt.Sprintf("Program ID: Scheduled Start Time %02d:%02d on Day %02d of Month %02d", hour, minute, day, month)
		if pkt[2][1]&0x10 != 0 {
			s += " (Tape Delayed)"
		}
		return s, nil
	case 0x02: // length / elapsed time
		if err := need(class, typ, len(pkt), 2); err != nil {
			return "", err
		}
		hours := pkt[1][0] & 0x3F
		minutes := pkt[1][1] & 0x3F
		return fmt.Sprintf("Program Length: %d:%02d", hours, minutes), nil
	case 0x03: // program name
		return "Program Name: " + decodeString(pkt[1:]), nil
	case 0x04: // genre
		var genres []string
		for _, p := range pkt[1:] {
			if g, ok := genreCodes[p[0]]; ok {
				genres = append(genres, g)
			}
			if g, ok := genreCodes[p[1]]; ok {
				genres = append(genres, g)
			}
		}
		return fmt.Sprintf("Program Genre: %v", genres), nil
	case 0x05: // content advisory
		if err := need(class, typ, len(pkt), 2); err != nil {
			return "", err
		}
		return "Content Advisory: " + decodeContentAdvisory(pkt[1][0], pkt[1][1]), nil
	case 0x06: // audio services
		if err := need(class, typ, len(pkt), 2); err != nil {
			return "", err
		}
		return "Audio Services: " + decodeAudioServices(pkt[1][0], pkt[1][1]), nil
	case 0x07:
		return "Caption Services", nil
	case 0x08: // CGMS copy control
		if err := need(class, typ, len(pkt), 2); err != nil {
			return "", err
		}
		return "CGMS: " + decodeCGMS(pkt[1][0]), nil
	case 0x09: // aspect ratio
		if err := need(class, typ, len(pkt), 2); err != nil {
			return "", err
		}
		startLine := 22 + int(pkt[1][0]&0x3F)
		endLine := 262 - int(pkt[1][1]&0x3F)
		anamorphic := pkt[1][1]&0x01 != 0
		return fmt.Sprintf("Aspect Ratio: active picture lines %d-%d, anamorphic=%v", startLine, endLine, anamorphic), nil
	case 0x0C, 0x0D:
		return "Composite Packet (unsupported)", nil
	default:
		if typ >= 0x10 && typ <= 0x17 {
			line := typ - 0x10 + 1
			return fmt.Sprintf("Program Description line %d: %s", line, decodeString(pkt[1:])), nil
		}
		return fmt.Sprintf("Program class %#x type %#x (%d pairs)", class, typ, len(pkt)), nil
	}
}

func describeChannel(typ int, pkt [][2]uint8) (string, error) {
	switch typ {
	case 0x01:
		return "Channel Network Name: " + decodeString(pkt[1:]), nil
	case 0x02:
		return "Channel Call Letters: " + decodeString(pkt[1:]), nil
	case 0x03:
		if err := need(class5, typ, len(pkt), 2); err != nil {
			return "", err
		}
		hour := pkt[1][1] & 0x1F
		minute := pkt[1][0] & 0x3F
		return fmt.Sprintf("Channel Tape Delay: %02d:%02d", hour, minute), nil
	case 0x04:
		return "Channel Network Info", nil
	default:
		return fmt.Sprintf("Channel type %#x (%d pairs)", typ, len(pkt)), nil
	}
}

func describeMisc(typ int, pkt [][2]uint8) (string, error) {
	switch {
	case typ == 0x01:
		if err := need(class7, typ, len(pkt), 2); err != nil {
			return "", err
		}
		return "Time of Day: " + decodeTimeOfDay(pkt[1:]), nil
	case typ == 0x04:
		if err := need(class7, typ, len(pkt), 2); err != nil {
			return "", err
		}
		return "Local Time Zone: " + decodeLocalTimeZone(pkt[1][0]), nil
	case typ >= 0x40 && typ <= 0x43:
		return "Channel Map (unsupported)", nil
	default:
		return fmt.Sprintf("Miscellaneous type %#x (%d pairs)", typ, len(pkt)), nil
	}
}

func describeWeather(typ int, pkt [][2]uint8) (string, error) {
	switch typ {
	case 0x01:
		return "Weather (local)", nil
	case 0x02:
		return "Weather: " + decodeString(pkt[1:]), nil
	default:
		return fmt.Sprintf("Public Service type %#x (%d pairs)", typ, len(pkt)), nil
	}
}

// decodeString renders the remaining byte pairs of a packet as 7-bit
// ASCII (parity bit cleared), stopping at the first null byte. The
// CEA-608 character substitutions (accented letters, block glyph) are not
// applied.
func decodeString(pairs [][2]uint8) string {
	var out []byte
	for _, p := range pairs {
		for _, b := range p {
			if b == 0 {
				return string(out)
			}
			out = append(out, b&0x7F)
		}
	}
	return string(out)
}

var genreCodes = map[uint8]string{
	0x20: "Education", 0x21: "Entertainment", 0x22: "Movie", 0x23: "News", 0x24: "Religious",
	0x25: "Sports", 0x26: "Other", 0x27: "Action", 0x28: "Advertisement", 0x29: "Animated",
	0x2A: "Anthology", 0x2B: "Automobile", 0x2C: "Awards", 0x2D: "Baseball", 0x2E: "Basketball",
	0x2F: "Bulletin", 0x30: "Business", 0x31: "Classical", 0x32: "College", 0x33: "Combat",
	0x34: "Comedy", 0x35: "Commentary", 0x36: "Concert", 0x37: "Consumer", 0x38: "Contemporary",
	0x39: "Crime", 0x3A: "Dance", 0x3B: "Documentary", 0x3C: "Drama", 0x3D: "Elementary",
	0x3E: "Erotica", 0x3F: "Exercise", 0x40: "Fantasy", 0x41: "Farm", 0x42: "Fashion",
	0x43: "Fiction", 0x44: "Food", 0x45: "Football", 0x46: "Foreign", 0x47: "Fund Raiser",
	0x48: "Game/Quiz", 0x49: "Garden", 0x4A: "Golf", 0x4B: "Government", 0x4C: "Health",
	0x4D: "High School", 0x4E: "History", 0x4F: "Hobby", 0x50: "Hockey", 0x51: "Home",
	0x52: "Horror", 0x53: "Information", 0x54: "Instruction", 0x55: "International", 0x56: "Interview",
	0x57: "Language", 0x58: "Legal", 0x59: "Live", 0x5A: "Local", 0x5B: "Math",
	0x5C: "Medical", 0x5D: "Meeting", 0x5E: "Military", 0x5F: "Miniseries", 0x60: "Music",
	0x61: "Mystery", 0x62: "National", 0x63: "Nature", 0x64: "Police", 0x65: "Politics",
	0x66: "Premier", 0x67: "Prerecorded", 0x68: "Product", 0x69: "Professional", 0x6A: "Public",
	0x6B: "Racing", 0x6C: "Reading", 0x6D: "Repair", 0x6E: "Repeat", 0x6F: "Review",
	0x70: "Romance", 0x71: "Science", 0x72: "Series", 0x73: "Service", 0x74: "Shopping",
	0x75: "Soap", 0x76: "Special", 0x77: "Suspense", 0x78: "Talk", 0x79: "Technical",
	0x7A: "Tennis", 0x7B: "Travel", 0x7C: "Variety", 0x7D: "Video", 0x7E: "Weather",
	0x7F: "Western",
}

var audioServicesLanguage = []string{"Unknown", "English", "Spanish", "French", "German", "Italian", "Other", "None"}
var audioServicesTypeMain = []string{"Unknown", "Mono", "Simulated Stereo", "Stereo", "Stereo Surround", "Data Service", "Other", "None"}
var audioServicesTypeSecondary = []string{"Unknown", "Mono", "Video Descriptions", "Non-program Audio", "Special Effects", "Data Service", "Other", "None"}

// decodeAudioServices decodes the main and SAP audio service bytes, matching
// XDS_AUDIO_SERVICES_LANGUAGE/TYPE_MAIN/TYPE_SECONDARY lookups in the
// original - including its main&56>>3 language index, which Python's
// operator precedence resolves to main&7 rather than the bits-3-5 language
// field the CEA-608 tables otherwise document.
func decodeAudioServices(main, sap uint8) string {
	mainLang := audioServicesLanguage[main&0x07]
	mainType := audioServicesTypeMain[main&0x07]
	sapLang := audioServicesLanguage[sap&0x07]
	sapType := audioServicesTypeSecondary[sap&0x07]
	return fmt.Sprintf("Main:%s(%s) Sap:%s(%s)", mainLang, mainType, sapLang, sapType)
}

var cgmsCopying = []string{
	"Copying is permitted without restriction", "Condition not to be used",
	"One generation of copies may be made", "No copying is permitted",
}

var cgmsAnalogProtection = []string{
	"No Analogue protection",
	"Analogue protection: PSP On; Split Burst Off",
	"Analogue protection: PSP On; 2 line Split Burst On",
	"Analogue protection: PSP On; 4 line Split Burst On",
}

// decodeCGMS decodes the copy-generation-management and analog-protection
// fields of the first CGMS byte, matching c1&(24>>3) (i.e. c1&3) for the
// copying field and c1&7 for the protection field.
func decodeCGMS(c1 uint8) string {
	copying := "Copying reserved"
	if v := c1 & 0x03; int(v) < len(cgmsCopying) {
		copying = cgmsCopying[v]
	}
	protection := ""
	if v := c1 & 0x07; int(v) < len(cgmsAnalogProtection) {
		protection = cgmsAnalogProtection[v]
	}
	if protection == "" {
		return copying
	}
	return copying + " " + protection
}

func decodeContentAdvisory(b1, b2 uint8) string {
	system := (b1 >> 3) & 0x03
	switch system {
	case 0, 2:
		return "MPA Rating: " + mpaRating(b1&0x07)
	case 1:
		return fmt.Sprintf("US TV Rating: %s (violence=%v sex=%v language=%v dialog=%v)",
			usTVRating(b1&0x07), b2&0x02 != 0, b2&0x01 != 0, b2&0x04 != 0, b2&0x08 != 0)
	case 3:
		return decodeInternationalRating(b1, b2)
	default:
		return "Unknown Rating System"
	}
}

var canadianEnglishRatings = []string{"E", "C", "C8+", "G", "PG", "14+", "18+", "Invalid"}
var canadianFrenchRatings = []string{"E", "G", "8 ans +", "13 ans +", "16 ans +", "18 ans +", "Invalid", "Invalid"}

// decodeInternationalRating decodes the system=3 (international) content
// advisory subsystem, matching subsystem = (ca1&32>>5) + (ca2&8>>2) - which
// Python's operator precedence resolves to (ca1&1)+(ca2&2), not the bit
// fields the names suggest.
func decodeInternationalRating(ca1, ca2 uint8) string {
	subsystem := (ca1 & 0x01) + (ca2 & 0x02)
	switch subsystem {
	case 1:
		return "Canadian English Rating: " + canadianEnglishRatings[ca2&0x07]
	case 2:
		return "Canadian French Rating: " + canadianFrenchRatings[ca2&0x07]
	default:
		return fmt.Sprintf("International reserved code (%#x, %#x)", ca1, ca2)
	}
}

func mpaRating(v uint8) string {
	ratings := map[uint8]string{0: "N/A", 1: "G", 2: "PG", 3: "PG-13", 4: "R", 5: "NC-17", 6: "X", 7: "Not Rated"}
	return ratings[v]
}

func usTVRating(v uint8) string {
	ratings := map[uint8]string{0: "None", 1: "TV-Y", 2: "TV-Y7", 3: "TV-G", 4: "TV-PG", 5: "TV-14", 6: "TV-MA", 7: "None"}
	return ratings[v]
}

var monthNames = [...]string{"", "January", "February", "March", "April", "May", "June",
	"July", "August", "September", "October", "November", "December"}

var dayOfWeekNames = [...]string{"", "Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"}

func decodeTimeOfDay(pairs [][2]uint8) string {
	if len(pairs) < 3 {
		return "incomplete"
	}
	minute := pairs[0][0] & 0x3F
	hour := pairs[0][1] & 0x1F
	dayOfMonth := pairs[1][0] & 0x1F
	month := pairs[1][1] & 0x0F
	dayOfWeek := pairs[2][0] & 0x07
	year := 1990 + int(pairs[2][1]&0x3F)
	monthName := ""
	if int(month) < len(monthNames) {
		monthName = monthNames[month]
	}
	dowName := ""
	if int(dayOfWeek) < len(dayOfWeekNames) {
		dowName = dayOfWeekNames[dayOfWeek]
	}
	return fmt.Sprintf("%s %s %d, %d %02d:%02d", dowName, monthName, dayOfMonth, year, hour, minute)
}

func decodeLocalTimeZone(b uint8) string {
	offset := -int(b & 0x1F)
	dst := b&0x20 != 0
	return fmt.Sprintf("UTC%+d DST=%v", offset, dst)
}
